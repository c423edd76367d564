// Package session implements the self-contained site session token carried in
// the gate cookie. A token embeds its issue time, a random nonce, and the
// server-side shared secret; there is no server-side session store, the cookie
// is the whole session.
package session

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Cookie names shared by the issuer, the gate, and the auth handlers.
const (
	SiteCookie     = "site_session"
	CustomerCookie = "customer_token"
)

const (
	// Validity is the canonical session window. Earlier deployments used
	// 7 days; 24 hours is the value the service standardizes on.
	Validity = 24 * time.Hour

	// MinNonceLen guards against truncated or hand-rolled tokens. Nonces are
	// UUID strings, far above this floor.
	MinNonceLen = 8

	delimiter = "::"
)

// Token is the decoded form of a site session token.
type Token struct {
	IssuedAt time.Time
	Nonce    string
	Secret   string
}

// Encode joins the token fields and base64-encodes the result so the value is
// cookie-safe. Decode is its exact inverse.
func Encode(issuedAt time.Time, nonce, secret string) string {
	raw := strconv.FormatInt(issuedAt.UnixMilli(), 10) + delimiter + nonce + delimiter + secret
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// Decode parses an encoded token. Malformed input of any kind (bad base64,
// wrong field count, non-numeric timestamp) returns an error; callers treat
// that as "no valid session", never as a failure to propagate.
func Decode(value string) (Token, error) {
	raw, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return Token{}, fmt.Errorf("session: decode token: %w", err)
	}
	parts := strings.Split(string(raw), delimiter)
	if len(parts) != 3 {
		return Token{}, fmt.Errorf("session: decode token: expected 3 fields, got %d", len(parts))
	}
	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("session: decode token: bad timestamp: %w", err)
	}
	return Token{
		IssuedAt: time.UnixMilli(millis),
		Nonce:    parts[1],
		Secret:   parts[2],
	}, nil
}

// Valid reports whether the token is usable at the given instant: issued
// within the validity window, nonce long enough, secret present.
func (t Token) Valid(now time.Time) bool {
	if now.Sub(t.IssuedAt) > Validity {
		return false
	}
	if len(t.Nonce) <= MinNonceLen {
		return false
	}
	return len(t.Secret) > 0
}

// SiteCookieFor wraps an encoded token in the site session cookie with the
// attributes every revision of the storefront has used: HttpOnly, strict
// same-site, whole-site path, max-age equal to the validity window.
func SiteCookieFor(value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SiteCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(Validity / time.Second),
	}
}

// CustomerCookieFor wraps a platform-issued access token in the customer
// cookie. The expiry comes from the platform, not from this service.
func CustomerCookieFor(accessToken string, expiresAt time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CustomerCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  expiresAt,
	}
}

// ClearCookie produces a deletion cookie (Max-Age=0) for the named cookie.
// Clearing an absent cookie is a no-op for the browser, so this is idempotent.
func ClearCookie(name string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	}
}
