package shopify

import (
	"context"
	"fmt"
	"time"
)

// AccessToken is the platform-issued customer credential. Both fields come
// from the platform as-is; this service stores and forwards them without
// inspecting the token's structure.
type AccessToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

const loginMutation = `
  mutation customerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
    customerAccessTokenCreate(input: $input) {
      customerUserErrors { code field message }
      customerAccessToken { accessToken expiresAt }
    }
  }
`

// Login exchanges customer credentials for an access token. A wrong password
// comes back as user errors, not as a Go error.
func (c *Client) Login(ctx context.Context, email, password string) (*AccessToken, []UserError, error) {
	var out struct {
		Payload struct {
			UserErrors []UserError  `json:"customerUserErrors"`
			Token      *AccessToken `json:"customerAccessToken"`
		} `json:"customerAccessTokenCreate"`
	}
	err := c.storefront(ctx, loginMutation, map[string]any{
		"input": map[string]any{"email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, nil, err
	}
	if len(out.Payload.UserErrors) > 0 {
		return nil, out.Payload.UserErrors, nil
	}
	if out.Payload.Token == nil {
		return nil, nil, fmt.Errorf("shopify: login returned neither token nor errors")
	}
	return out.Payload.Token, nil, nil
}

// CreateCustomer provisions an account through the Admin API. The password is
// set and the email marked verified so the subsequent login succeeds without
// an activation round-trip. Platform-rejected input surfaces as RequestError.
func (c *Client) CreateCustomer(ctx context.Context, firstName, lastName, email, password string) error {
	payload := map[string]any{
		"customer": map[string]any{
			"first_name":            firstName,
			"last_name":             lastName,
			"email":                 email,
			"password":              password,
			"password_confirmation": password,
			"verified_email":        true,
		},
	}
	return c.adminREST(ctx, payload, nil)
}

// Customer is the account view the storefront's account pages render.
type Customer struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Addresses []Address `json:"addresses"`
	Orders    []Order   `json:"orders"`
}

// Address is a customer mailing address.
type Address struct {
	ID       string `json:"id,omitempty"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// Order is a summary row of the customer's order history.
type Order struct {
	ID              string `json:"id"`
	OrderNumber     int    `json:"orderNumber"`
	ProcessedAt     string `json:"processedAt"`
	FinancialStatus string `json:"financialStatus"`
	TotalAmount     string `json:"totalAmount"`
	TotalCurrency   string `json:"totalCurrency"`
}

const customerQuery = `
  query getCustomer($customerAccessToken: String!) {
    customer(customerAccessToken: $customerAccessToken) {
      id
      firstName
      lastName
      email
      addresses(first: 10) {
        edges { node { id address1 address2 city province zip country } }
      }
      orders(first: 20, sortKey: PROCESSED_AT, reverse: true) {
        edges { node { id orderNumber processedAt financialStatus totalPriceV2 { amount currencyCode } } }
      }
    }
  }
`

// Customer fetches the profile, addresses, and recent orders for the given
// access token. A nil customer means the token is no longer honored by the
// platform.
func (c *Client) Customer(ctx context.Context, token string) (*Customer, error) {
	var out struct {
		Customer *struct {
			ID        string `json:"id"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Email     string `json:"email"`
			Addresses struct {
				Edges []struct {
					Node Address `json:"node"`
				} `json:"edges"`
			} `json:"addresses"`
			Orders struct {
				Edges []struct {
					Node struct {
						ID              string `json:"id"`
						OrderNumber     int    `json:"orderNumber"`
						ProcessedAt     string `json:"processedAt"`
						FinancialStatus string `json:"financialStatus"`
						TotalPriceV2    struct {
							Amount       string `json:"amount"`
							CurrencyCode string `json:"currencyCode"`
						} `json:"totalPriceV2"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"orders"`
		} `json:"customer"`
	}
	if err := c.storefront(ctx, customerQuery, map[string]any{"customerAccessToken": token}, &out); err != nil {
		return nil, err
	}
	if out.Customer == nil {
		return nil, nil
	}

	cust := &Customer{
		ID:        out.Customer.ID,
		FirstName: out.Customer.FirstName,
		LastName:  out.Customer.LastName,
		Email:     out.Customer.Email,
	}
	for _, e := range out.Customer.Addresses.Edges {
		cust.Addresses = append(cust.Addresses, e.Node)
	}
	for _, e := range out.Customer.Orders.Edges {
		cust.Orders = append(cust.Orders, Order{
			ID:              e.Node.ID,
			OrderNumber:     e.Node.OrderNumber,
			ProcessedAt:     e.Node.ProcessedAt,
			FinancialStatus: e.Node.FinancialStatus,
			TotalAmount:     e.Node.TotalPriceV2.Amount,
			TotalCurrency:   e.Node.TotalPriceV2.CurrencyCode,
		})
	}
	return cust, nil
}

const updateCustomerMutation = `
  mutation customerUpdate($customerAccessToken: String!, $customer: CustomerUpdateInput!) {
    customerUpdate(customerAccessToken: $customerAccessToken, customer: $customer) {
      customer { id firstName lastName }
      customerUserErrors { code field message }
    }
  }
`

// UpdateCustomer changes the customer's name on file.
func (c *Client) UpdateCustomer(ctx context.Context, token, firstName, lastName string) ([]UserError, error) {
	var out struct {
		Payload struct {
			UserErrors []UserError `json:"customerUserErrors"`
		} `json:"customerUpdate"`
	}
	err := c.storefront(ctx, updateCustomerMutation, map[string]any{
		"customerAccessToken": token,
		"customer":            map[string]any{"firstName": firstName, "lastName": lastName},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Payload.UserErrors, nil
}

const createAddressMutation = `
  mutation customerAddressCreate($customerAccessToken: String!, $address: MailingAddressInput!) {
    customerAddressCreate(customerAccessToken: $customerAccessToken, address: $address) {
      customerAddress { id }
      customerUserErrors { code field message }
    }
  }
`

// CreateAddress adds a mailing address to the customer's address book.
func (c *Client) CreateAddress(ctx context.Context, token string, addr Address) ([]UserError, error) {
	var out struct {
		Payload struct {
			UserErrors []UserError `json:"customerUserErrors"`
		} `json:"customerAddressCreate"`
	}
	err := c.storefront(ctx, createAddressMutation, map[string]any{
		"customerAccessToken": token,
		"address": map[string]any{
			"address1": addr.Address1,
			"address2": addr.Address2,
			"city":     addr.City,
			"province": addr.Province,
			"zip":      addr.Zip,
			"country":  addr.Country,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Payload.UserErrors, nil
}
