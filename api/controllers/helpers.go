package controllers

import (
	"net/http"

	"github.com/angelmondragon/hubs-storefront/api/middleware"
	"github.com/angelmondragon/hubs-storefront/internal/session"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
)

func bundleFrom(r *http.Request) (*session.Bundle, error) {
	bundle := middleware.BundleFromContext(r.Context())
	if bundle == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return bundle, nil
}
