package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/hubs-storefront/internal/session"
	"github.com/angelmondragon/hubs-storefront/pkg/auth"
	authsession "github.com/angelmondragon/hubs-storefront/pkg/auth/session"
	"github.com/angelmondragon/hubs-storefront/pkg/config"
)

type stubResolver struct {
	valid      map[string]string
	resolveErr error
	started    []string
}

func (s *stubResolver) Resolve(_ context.Context, token string) (*auth.SessionClaims, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	id, ok := s.valid[token]
	if !ok {
		return nil, authsession.ErrInvalidSession
	}
	claims := &auth.SessionClaims{}
	claims.ID = id
	return claims, nil
}

func (s *stubResolver) Start(_ context.Context, locale string) (string, string, error) {
	s.started = append(s.started, locale)
	return "new-session", "new-token", nil
}

type stubFactory struct{}

func (stubFactory) ForSession(id string) (*session.Bundle, error) {
	return &session.Bundle{SessionID: id}, nil
}

var testSessionConfig = config.SessionConfig{CookieName: "sf_session", TTL: time.Hour, CookieSecure: true}

func runSession(t *testing.T, resolver *stubResolver, cookie string) (*httptest.ResponseRecorder, *session.Bundle) {
	t.Helper()
	var got *session.Bundle
	handler := Session(resolver, stubFactory{}, testSessionConfig, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = BundleFromContext(r.Context())
		assert.Equal(t, got.SessionID, SessionIDFromContext(r.Context()))
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(WithLocale(req.Context(), "ka"))
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "sf_session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, got
}

func TestSessionReusesValidCookie(t *testing.T) {
	resolver := &stubResolver{valid: map[string]string{"tok": "existing"}}
	rec, bundle := runSession(t, resolver, "tok")

	require.NotNil(t, bundle)
	assert.Equal(t, "existing", bundle.SessionID)
	assert.Empty(t, resolver.started)
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessionStartsWhenCookieMissingOrInvalid(t *testing.T) {
	for _, cookie := range []string{"", "stale"} {
		resolver := &stubResolver{valid: map[string]string{}}
		rec, bundle := runSession(t, resolver, cookie)

		require.NotNil(t, bundle)
		assert.Equal(t, "new-session", bundle.SessionID)
		assert.Equal(t, []string{"ka"}, resolver.started)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sf_session", cookies[0].Name)
		assert.Equal(t, "new-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	}
}

func TestSessionStoreFailureIsDependencyError(t *testing.T) {
	resolver := &stubResolver{resolveErr: errors.New("redis down")}
	rec, bundle := runSession(t, resolver, "tok")

	assert.Nil(t, bundle)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, testSessionConfig)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
