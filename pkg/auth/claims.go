package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is carried in the storefront session cookie. The JWT id is
// the session id.
type SessionClaims struct {
	Locale string `json:"locale,omitempty"`
	jwt.RegisteredClaims
}

// SessionID returns the session identifier carried as the jti.
func (c *SessionClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.ID
}
