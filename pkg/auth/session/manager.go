package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/hubs-storefront/pkg/auth"
	"github.com/angelmondragon/hubs-storefront/pkg/config"
	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"github.com/google/uuid"
)

const keyNamespace = "sf:session"

var ErrInvalidSession = errors.New("invalid session")

// Key namespaces per-session durable state.
func Key(sessionID string, parts ...string) string {
	all := append([]string{keyNamespace, sessionID}, parts...)
	clean := all[:0]
	for _, p := range all {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, ":")
}

// Manager registers storefront sessions and issues their cookies.
type Manager struct {
	store kv.Store
	cfg   config.SessionConfig
	now   func() time.Time
}

// Resolver is the read surface used by the session middleware.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*auth.SessionClaims, error)
	Start(ctx context.Context, locale string) (sessionID, token string, err error)
}

// NewManager constructs a session manager over the durable store.
func NewManager(store kv.Store, cfg config.SessionConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, cfg: cfg, now: time.Now}, nil
}

// Start registers a fresh session and returns its id and signed cookie value.
func (m *Manager) Start(ctx context.Context, locale string) (string, string, error) {
	id := NewSessionID()
	now := m.now().UTC()
	token, err := auth.MintSessionToken(m.cfg, now, id, locale)
	if err != nil {
		return "", "", err
	}
	if err := m.store.Set(ctx, Key(id, "meta"), now.Format(time.RFC3339), m.cfg.TTL); err != nil {
		return "", "", err
	}
	return id, token, nil
}

// Resolve validates the cookie value and checks that the session is still
// registered.
func (m *Manager) Resolve(ctx context.Context, token string) (*auth.SessionClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidSession
	}
	claims, err := auth.ParseSessionToken(m.cfg, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if _, err := m.store.Get(ctx, Key(claims.SessionID(), "meta")); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return claims, nil
}

// Revoke drops the session registration and the named per-session keys.
func (m *Manager) Revoke(ctx context.Context, sessionID string, dataKeys ...string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	keys := []string{Key(sessionID, "meta")}
	for _, k := range dataKeys {
		keys = append(keys, Key(sessionID, k))
	}
	return m.store.Del(ctx, keys...)
}

// TTL is the lifetime applied to session data.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

// NewSessionID produces the identifier used as the JWT jti and key prefix.
func NewSessionID() string {
	return uuid.NewString()
}
