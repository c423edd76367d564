// Package shopify is the client for the commerce platform behind the
// storefront: the Storefront GraphQL API for customer-facing operations and
// the Admin API for account creation and pre-launch forms.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/swambasic/storefront/internal/config"
)

const (
	storefrontPath = "/api/2024-07/graphql.json"
	adminGraphPath = "/admin/api/2024-04/graphql.json"
	adminRESTPath  = "/admin/api/2024-07/customers.json"
)

// Client talks to a single Shopify store.
type Client struct {
	// BaseURL is https://{store domain} in production; tests point it at a
	// local server.
	BaseURL string

	storefrontToken string
	adminToken      string
	client          *http.Client
	log             *slog.Logger
}

// New creates a Client for the configured store.
func New(cfg config.ShopifyConfig, log *slog.Logger) *Client {
	return &Client{
		BaseURL:         "https://" + cfg.StoreDomain,
		storefrontToken: cfg.StorefrontToken,
		adminToken:      cfg.AdminToken,
		client:          &http.Client{},
		log:             log,
	}
}

// Configured reports whether the client has a store domain to talk to.
// Handlers answer a configuration error instead of dialing nowhere.
func (c *Client) Configured() bool {
	return c.BaseURL != "https://"
}

// UserError is a platform-reported problem with the submitted data (wrong
// password, taken email, invalid phone). These travel back to the client as
// 4xx responses, unlike transport failures.
type UserError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RequestError carries the messages of an admin request the platform rejected.
type RequestError struct {
	Messages []string
}

func (e *RequestError) Error() string {
	return "shopify: request rejected: " + strings.Join(e.Messages, ", ")
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// storefront runs a query against the Storefront GraphQL API and decodes the
// response's data field into out.
func (c *Client) storefront(ctx context.Context, query string, vars map[string]any, out any) error {
	return c.graphql(ctx, c.BaseURL+storefrontPath, "X-Shopify-Storefront-Access-Token", c.storefrontToken, query, vars, out)
}

// adminGraphQL runs a mutation against the Admin GraphQL API.
func (c *Client) adminGraphQL(ctx context.Context, query string, vars map[string]any, out any) error {
	return c.graphql(ctx, c.BaseURL+adminGraphPath, "X-Shopify-Access-Token", c.adminToken, query, vars, out)
}

func (c *Client) graphql(ctx context.Context, url, tokenHeader, token, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("shopify: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify: api error %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("shopify: parse response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("shopify: graphql error: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("shopify: parse data: %w", err)
		}
	}
	return nil
}

// adminREST posts a JSON payload to the Admin REST customers endpoint. A
// non-2xx answer with an errors object becomes a RequestError.
func (c *Client) adminREST(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("shopify: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+adminRESTPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.adminToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Errors map[string]json.RawMessage `json:"errors"`
		}
		if err := json.Unmarshal(respBody, &failure); err == nil && len(failure.Errors) > 0 {
			return &RequestError{Messages: flattenErrors(failure.Errors)}
		}
		return fmt.Errorf("shopify: admin api error %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("shopify: parse response: %w", err)
		}
	}
	return nil
}

// flattenErrors turns the admin API's errors object ({"email": ["is taken"]})
// into a flat message list.
func flattenErrors(errs map[string]json.RawMessage) []string {
	var messages []string
	for field, raw := range errs {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			for _, m := range list {
				messages = append(messages, field+" "+m)
			}
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			messages = append(messages, field+" "+single)
		}
	}
	return messages
}
