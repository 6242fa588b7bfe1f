package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/internal/session"
	authsession "github.com/angelmondragon/hubs-storefront/pkg/auth/session"
	"github.com/angelmondragon/hubs-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

type bundleFactory interface {
	ForSession(sessionID string) (*session.Bundle, error)
}

// Session resolves the visitor's session cookie, starting a new session when
// the cookie is missing, invalid or expired, and attaches the session stores
// to the request context.
func Session(resolver authsession.Resolver, factory bundleFactory, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sessionID string
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				claims, resolveErr := resolver.Resolve(ctx, cookie.Value)
				switch {
				case resolveErr == nil:
					sessionID = claims.SessionID()
				case errors.Is(resolveErr, authsession.ErrInvalidSession):
					if logg != nil {
						logg.Debug(ctx, "session.invalid")
					}
				default:
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, resolveErr, "resolve session"))
					return
				}
			}

			if sessionID == "" {
				id, token, err := resolver.Start(ctx, LocaleFromContext(ctx))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start session"))
					return
				}
				sessionID = id
				http.SetCookie(w, sessionCookie(cfg, token))
				if logg != nil {
					logg.Info(logg.WithSessionID(ctx, id), "session.started")
				}
			}

			bundle, err := factory.ForSession(sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build session stores"))
				return
			}

			ctx = WithBundle(WithSessionID(ctx, sessionID), bundle)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionCookie(cfg config.SessionConfig, token string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
