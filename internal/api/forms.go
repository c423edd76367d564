package api

import (
	"net/http"
	"strings"

	"github.com/swambasic/storefront/internal/audit"
)

type waitlistRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (s *Server) handleWaitlist(w http.ResponseWriter, r *http.Request) {
	var req waitlistRequest
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		s.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if !s.shop.Configured() {
		s.log.Error("api: shopify client not configured")
		s.writeError(w, http.StatusInternalServerError, "Server configuration error.")
		return
	}

	userErrs, err := s.shop.JoinWaitlist(r.Context(), req.Email, req.Phone)
	if err != nil {
		s.log.Error("api: waitlist", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to join waitlist.")
		return
	}
	if len(userErrs) > 0 {
		s.writeError(w, http.StatusBadRequest, userErrs[0].Message)
		return
	}

	s.audit.Record(audit.KindWaitlist, req.Email, "")
	s.writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeBody(r, &req); err != nil ||
		req.Name == "" || req.Email == "" || req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	if !s.shop.Configured() {
		s.log.Error("api: shopify client not configured")
		s.writeError(w, http.StatusInternalServerError, "Server configuration error.")
		return
	}

	firstName, lastName := splitName(req.Name)
	if err := s.shop.ContactInquiry(r.Context(), firstName, lastName, req.Email, req.Message); err != nil {
		s.log.Error("api: contact", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to submit message.")
		return
	}

	s.audit.Record(audit.KindContact, req.Email, "")
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// splitName maps a free-form name onto the platform's first/last fields.
// Single-word names are used for both.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name, name
	}
	first = parts[0]
	last = strings.Join(parts[1:], " ")
	if last == "" {
		last = first
	}
	return first, last
}
