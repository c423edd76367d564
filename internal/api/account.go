package api

import (
	"net/http"

	"github.com/swambasic/storefront/internal/session"
	"github.com/swambasic/storefront/internal/shopify"
)

// customerToken extracts the customer access token. The gate already enforces
// presence on /api/account routes; a missing cookie here still answers 401
// rather than assuming the gate ran.
func (s *Server) customerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(session.CustomerCookie)
	if err != nil || c.Value == "" {
		s.writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return "", false
	}
	return c.Value, true
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	token, ok := s.customerToken(w, r)
	if !ok {
		return
	}

	cust, err := s.shop.Customer(r.Context(), token)
	if err != nil {
		s.log.Error("api: fetch customer", "error", err)
		s.writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if cust == nil {
		// The platform no longer honors the token; drop the stale cookie.
		http.SetCookie(w, session.ClearCookie(session.CustomerCookie, s.cfg.Production()))
		s.writeError(w, http.StatusUnauthorized, "Session expired.")
		return
	}

	s.writeJSON(w, http.StatusOK, cust)
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	token, ok := s.customerToken(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil || req.FirstName == "" || req.LastName == "" {
		s.writeError(w, http.StatusBadRequest, "First and last name are required.")
		return
	}

	userErrs, err := s.shop.UpdateCustomer(r.Context(), token, req.FirstName, req.LastName)
	if err != nil {
		s.log.Error("api: update profile", "error", err)
		s.writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if len(userErrs) > 0 {
		s.writeError(w, http.StatusBadRequest, userErrs[0].Message)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type addAddressRequest struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

func (s *Server) handleAddAddress(w http.ResponseWriter, r *http.Request) {
	token, ok := s.customerToken(w, r)
	if !ok {
		return
	}

	var req addAddressRequest
	if err := decodeBody(r, &req); err != nil ||
		req.Address1 == "" || req.City == "" || req.Zip == "" || req.Country == "" {
		s.writeError(w, http.StatusBadRequest, "Address, city, zip, and country are required.")
		return
	}

	userErrs, err := s.shop.CreateAddress(r.Context(), token, shopify.Address{
		Address1: req.Address1,
		Address2: req.Address2,
		City:     req.City,
		Province: req.Province,
		Zip:      req.Zip,
		Country:  req.Country,
	})
	if err != nil {
		s.log.Error("api: add address", "error", err)
		s.writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if len(userErrs) > 0 {
		s.writeError(w, http.StatusBadRequest, userErrs[0].Message)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
