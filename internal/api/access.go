package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/swambasic/storefront/internal/audit"
	"github.com/swambasic/storefront/internal/session"
)

type accessRequest struct {
	Password string `json:"password"`
}

// handleAccess is the site-wide gate unlock: it checks the submitted password
// against the configured one and mints the site session cookie. Repeat correct
// submissions simply re-mint a fresh token.
func (s *Server) handleAccess(w http.ResponseWriter, r *http.Request) {
	var req accessRequest
	if err := decodeBody(r, &req); err != nil || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	if s.cfg.SitePassword == "" || s.cfg.SessionSecret == "" {
		s.log.Error("api: site access secrets not configured")
		s.writeError(w, http.StatusInternalServerError, "Server configuration error.")
		return
	}

	if req.Password != s.cfg.SitePassword {
		// A generic rejection; nothing about how close the guess was.
		s.audit.Record(audit.KindAccessDenied, "", "")
		s.writeError(w, http.StatusUnauthorized, "Invalid access code")
		return
	}

	token := session.Encode(time.Now(), uuid.NewString(), s.cfg.SessionSecret)
	http.SetCookie(w, session.SiteCookieFor(token, s.cfg.Production()))
	s.audit.Record(audit.KindAccessGranted, "", "")
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
