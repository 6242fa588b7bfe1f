package medusa

import (
	"context"
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
)

type tokenEnvelope struct {
	Token    string `json:"token"`
	Location string `json:"location,omitempty"`
}

// Authenticate exchanges provider credentials for a customer token.
func (c *Client) Authenticate(ctx context.Context, provider string, credentials map[string]string) (string, error) {
	return c.tokenCall(ctx, "auth.login", pathf("/auth/customer/%s", provider), provider, credentials)
}

// Register creates an auth identity and returns the registration token used
// to create the customer profile.
func (c *Client) Register(ctx context.Context, provider string, credentials map[string]string) (string, error) {
	return c.tokenCall(ctx, "auth.register", pathf("/auth/customer/%s/register", provider), provider, credentials)
}

func (c *Client) tokenCall(ctx context.Context, op, path, provider string, credentials map[string]string) (string, error) {
	if err := requireID("auth provider", provider); err != nil {
		return "", err
	}
	var out tokenEnvelope
	if err := c.do(ctx, request{op: op, method: http.MethodPost, path: path, body: credentials}, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Token) == "" {
		if out.Location != "" {
			return "", pkgerrors.New(pkgerrors.CodeUnsupported, "redirect based authentication is not supported")
		}
		return "", pkgerrors.New(pkgerrors.CodeDependency, "commerce backend returned no token")
	}
	return out.Token, nil
}

// Logout invalidates the backend session tied to token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, request{op: "auth.logout", method: http.MethodDelete, path: "/auth/session", token: token}, nil)
}
