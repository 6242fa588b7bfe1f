package middleware

import (
	"context"

	"github.com/angelmondragon/hubs-storefront/internal/session"
)

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxLocale    contextKey = "locale"
	ctxBundle    contextKey = "session_bundle"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxLocale).(string); ok {
		return v
	}
	return ""
}

// BundleFromContext returns the per-session stores attached by Session.
func BundleFromContext(ctx context.Context) *session.Bundle {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxBundle).(*session.Bundle); ok {
		return v
	}
	return nil
}

// WithSessionID injects the session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLocale, locale)
}

// WithBundle injects the session stores for downstream handlers.
func WithBundle(ctx context.Context, bundle *session.Bundle) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxBundle, bundle)
}
