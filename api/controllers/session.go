package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/hubs-storefront/api/middleware"
	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/internal/session"
	"github.com/angelmondragon/hubs-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

type sessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, dataKeys ...string) error
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	Locale    string `json:"locale"`
}

func SessionGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, sessionResponse{
			SessionID: middleware.SessionIDFromContext(r.Context()),
			Locale:    middleware.LocaleFromContext(r.Context()),
		})
	}
}

// SessionDelete forgets everything stored for the session and expires the
// cookie. The next request starts a fresh session.
func SessionDelete(revoker sessionRevoker, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}
		if err := revoker.Revoke(r.Context(), sessionID, session.DataKeys()...); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session"))
			return
		}
		middleware.ClearSessionCookie(w, cfg)
		w.WriteHeader(http.StatusNoContent)
	}
}
