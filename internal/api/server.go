// Package api implements the storefront's JSON API: the site access gate
// endpoint, the customer auth bridge, account management, and the pre-launch
// forms. Every handler catches its own failures and answers structured JSON;
// no raw error ever reaches the client.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/swambasic/storefront/internal/audit"
	"github.com/swambasic/storefront/internal/config"
	"github.com/swambasic/storefront/internal/shopify"
)

const recentEventsLimit = 50

// Server carries the handlers' shared dependencies.
type Server struct {
	mux   *http.ServeMux
	cfg   *config.Config
	shop  *shopify.Client
	audit *audit.Store
	log   *slog.Logger
}

// NewServer wires all API routes onto a fresh mux.
func NewServer(cfg *config.Config, shop *shopify.Client, auditStore *audit.Store, log *slog.Logger) *Server {
	s := &Server{
		mux:   http.NewServeMux(),
		cfg:   cfg,
		shop:  shop,
		audit: auditStore,
		log:   log,
	}

	s.mux.HandleFunc("POST /api/access", s.handleAccess)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/account", s.handleAccount)
	s.mux.HandleFunc("POST /api/account/profile", s.handleUpdateProfile)
	s.mux.HandleFunc("POST /api/account/addresses", s.handleAddAddress)
	s.mux.HandleFunc("POST /api/waitlist", s.handleWaitlist)
	s.mux.HandleFunc("POST /api/contact", s.handleContact)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)

	return s
}

// Handler returns the http.Handler for use with http.Server. The gate
// middleware wraps this at wiring time.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Mux returns the underlying ServeMux for registering additional routes.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.audit.Recent(recentEventsLimit))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("api: encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// decodeBody parses the request body into dst. Each endpoint models its
// expected shape as an explicit struct; required-field checks happen in the
// handler right after this returns.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
