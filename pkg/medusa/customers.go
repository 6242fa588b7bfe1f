package medusa

import (
	"context"
	"net/http"
)

type customerEnvelope struct {
	Customer *Customer `json:"customer"`
}

// CreateCustomer creates the profile for a freshly registered identity.
func (c *Client) CreateCustomer(ctx context.Context, registrationToken string, in CreateCustomerRequest) (*Customer, error) {
	if err := requireID("registration token", registrationToken); err != nil {
		return nil, err
	}
	var env customerEnvelope
	if err := c.do(ctx, request{op: "customer.create", method: http.MethodPost, path: "/store/customers", body: in, token: registrationToken}, &env); err != nil {
		return nil, err
	}
	return env.Customer, nil
}

// RetrieveCustomer returns the profile of the authenticated customer.
func (c *Client) RetrieveCustomer(ctx context.Context, token string) (*Customer, error) {
	if err := requireID("customer token", token); err != nil {
		return nil, err
	}
	var env customerEnvelope
	if err := c.do(ctx, request{op: "customer.retrieve", method: http.MethodGet, path: "/store/customers/me", token: token}, &env); err != nil {
		return nil, err
	}
	return env.Customer, nil
}
