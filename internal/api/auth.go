package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/swambasic/storefront/internal/audit"
	"github.com/swambasic/storefront/internal/session"
	"github.com/swambasic/storefront/internal/shopify"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil || req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	if !s.shop.Configured() {
		s.log.Error("api: shopify client not configured")
		s.writeError(w, http.StatusInternalServerError, "Server configuration error.")
		return
	}

	token, userErrs, err := s.shop.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.log.Error("api: login", "error", err)
		s.writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if len(userErrs) > 0 {
		s.audit.Record(audit.KindLoginFailed, req.Email, userErrs[0].Message)
		s.writeError(w, http.StatusUnauthorized, userErrs[0].Message)
		return
	}

	http.SetCookie(w, session.CustomerCookieFor(token.AccessToken, token.ExpiresAt, s.cfg.Production()))
	s.audit.Record(audit.KindLoginOK, req.Email, "")
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// handleRegister is a two-step process: create the account through the Admin
// API, then log in with the same credentials to establish a session. When the
// account exists but the follow-up login fails, the answer distinguishes that
// partial success from a total failure.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil ||
		req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	if !s.shop.Configured() {
		s.log.Error("api: shopify client not configured")
		s.writeError(w, http.StatusInternalServerError, "Server configuration error.")
		return
	}

	if err := s.shop.CreateCustomer(r.Context(), req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		var reqErr *shopify.RequestError
		if errors.As(err, &reqErr) {
			s.writeError(w, http.StatusBadRequest, strings.Join(reqErr.Messages, ", "))
			return
		}
		s.log.Error("api: register create", "error", err)
		s.writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	token, userErrs, err := s.shop.Login(r.Context(), req.Email, req.Password)
	if err != nil || len(userErrs) > 0 {
		if err != nil {
			s.log.Error("api: register login", "error", err)
		}
		s.writeError(w, http.StatusInternalServerError, "Account created, but failed to log in.")
		return
	}

	http.SetCookie(w, session.CustomerCookieFor(token.AccessToken, token.ExpiresAt, s.cfg.Production()))
	s.audit.Record(audit.KindRegistered, req.Email, "")
	s.writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// handleLogout clears the customer token. Always succeeds; clearing an absent
// cookie is a no-op.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, session.ClearCookie(session.CustomerCookie, s.cfg.Production()))
	s.audit.Record(audit.KindLogout, "", "")
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
