package shopify

import (
	"context"
	"fmt"
)

const waitlistMutation = `
  mutation customerCreate($input: CustomerInput!) {
    customerCreate(input: $input) {
      customer { id email phone tags }
      userErrors { field message }
    }
  }
`

// JoinWaitlist records a pre-launch signup as a tagged customer through the
// Admin API. Duplicate or malformed submissions come back as user errors.
func (c *Client) JoinWaitlist(ctx context.Context, email, phone string) ([]UserError, error) {
	input := map[string]any{
		"email": email,
		"tags":  []string{"waitlist", "pre-launch"},
	}
	if phone != "" {
		input["phone"] = phone
	}

	var out struct {
		Payload struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"customerCreate"`
	}
	if err := c.adminGraphQL(ctx, waitlistMutation, map[string]any{"input": input}, &out); err != nil {
		return nil, err
	}

	var userErrs []UserError
	for _, ue := range out.Payload.UserErrors {
		userErrs = append(userErrs, UserError{Message: ue.Message})
	}
	return userErrs, nil
}

// ContactInquiry files a contact-form submission as a customer record tagged
// for follow-up, with the message in the note. The sender is not subscribed
// to marketing.
func (c *Client) ContactInquiry(ctx context.Context, firstName, lastName, email, message string) error {
	payload := map[string]any{
		"customer": map[string]any{
			"first_name":     firstName,
			"last_name":      lastName,
			"email":          email,
			"verified_email": false,
			"note":           fmt.Sprintf("Contact Form Submission:\n\n%s", message),
			"tags":           "contact-form-inquiry",
		},
	}
	return c.adminREST(ctx, payload, nil)
}
