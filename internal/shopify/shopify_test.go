package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swambasic/storefront/internal/config"
)

// newTestClient points a Client at a handler standing in for the platform.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(config.ShopifyConfig{
		StoreDomain:     "test.myshopify.com",
		StorefrontToken: "storefront-token",
		AdminToken:      "admin-token",
	}, slog.Default())
	c.BaseURL = srv.URL
	return c
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Shopify-Storefront-Access-Token"); got != "storefront-token" {
			t.Errorf("storefront token header = %q", got)
		}
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		input, _ := req.Variables["input"].(map[string]any)
		if input["email"] != "a@b.com" {
			t.Errorf("email variable = %v", input["email"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"customerAccessTokenCreate":{
			"customerUserErrors":[],
			"customerAccessToken":{"accessToken":"tok-123","expiresAt":"2030-01-02T15:04:05Z"}
		}}}`))
	}))

	tok, userErrs, err := client.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if len(userErrs) != 0 {
		t.Fatalf("Login() userErrs = %v", userErrs)
	}
	if tok.AccessToken != "tok-123" {
		t.Errorf("AccessToken = %q, want %q", tok.AccessToken, "tok-123")
	}
	if tok.ExpiresAt.Year() != 2030 {
		t.Errorf("ExpiresAt year = %d, want 2030", tok.ExpiresAt.Year())
	}
}

func TestLoginUserError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"customerAccessTokenCreate":{
			"customerUserErrors":[{"code":"UNIDENTIFIED_CUSTOMER","message":"Unidentified customer"}],
			"customerAccessToken":null
		}}}`))
	}))

	tok, userErrs, err := client.Login(context.Background(), "a@b.com", "wrong")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if tok != nil {
		t.Error("token should be nil on user error")
	}
	if len(userErrs) != 1 || userErrs[0].Message != "Unidentified customer" {
		t.Errorf("userErrs = %v", userErrs)
	}
}

func TestGraphQLTopLevelErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"throttled"}]}`))
	}))

	_, _, err := client.Login(context.Background(), "a@b.com", "pw")
	if err == nil {
		t.Fatal("expected error for top-level graphql errors")
	}
}

func TestCreateCustomerRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Shopify-Access-Token"); got != "admin-token" {
			t.Errorf("admin token header = %q", got)
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"email":["has already been taken"]}}`))
	}))

	err := client.CreateCustomer(context.Background(), "A", "B", "a@b.com", "pw")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if len(reqErr.Messages) != 1 || reqErr.Messages[0] != "email has already been taken" {
		t.Errorf("Messages = %v", reqErr.Messages)
	}
}

func TestCustomerFetch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"customer":{
			"id":"gid://shopify/Customer/1","firstName":"Ada","lastName":"L","email":"ada@b.com",
			"addresses":{"edges":[{"node":{"id":"addr1","address1":"1 Way","city":"X","province":"Y","zip":"0","country":"Z"}}]},
			"orders":{"edges":[{"node":{"id":"o1","orderNumber":1001,"processedAt":"2026-01-01T00:00:00Z",
				"financialStatus":"PAID","totalPriceV2":{"amount":"12.00","currencyCode":"USD"}}}]}
		}}}`))
	}))

	cust, err := client.Customer(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Customer() error = %v", err)
	}
	if cust.FirstName != "Ada" {
		t.Errorf("FirstName = %q, want %q", cust.FirstName, "Ada")
	}
	if len(cust.Addresses) != 1 || cust.Addresses[0].Address1 != "1 Way" {
		t.Errorf("Addresses = %v", cust.Addresses)
	}
	if len(cust.Orders) != 1 || cust.Orders[0].TotalAmount != "12.00" {
		t.Errorf("Orders = %v", cust.Orders)
	}
}

func TestCustomerGone(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"customer":null}}`))
	}))

	cust, err := client.Customer(context.Background(), "stale")
	if err != nil {
		t.Fatalf("Customer() error = %v", err)
	}
	if cust != nil {
		t.Error("customer should be nil for a token the platform no longer honors")
	}
}

func TestJoinWaitlistUserError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"customerCreate":{
			"customer":null,
			"userErrors":[{"field":["email"],"message":"Email has already been taken"}]
		}}}`))
	}))

	userErrs, err := client.JoinWaitlist(context.Background(), "a@b.com", "")
	if err != nil {
		t.Fatalf("JoinWaitlist() error = %v", err)
	}
	if len(userErrs) != 1 || userErrs[0].Message != "Email has already been taken" {
		t.Errorf("userErrs = %v", userErrs)
	}
}

func TestConfigured(t *testing.T) {
	empty := New(config.ShopifyConfig{}, slog.Default())
	if empty.Configured() {
		t.Error("empty config should not report configured")
	}
	full := New(config.ShopifyConfig{StoreDomain: "x.myshopify.com"}, slog.Default())
	if !full.Configured() {
		t.Error("domain set should report configured")
	}
}
