package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/redis"
)

const readinessTimeout = 2 * time.Second

// ReadinessCheck names a dependency probed by /health/ready.
type ReadinessCheck struct {
	Name   string
	Pinger redis.Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every check and fails with 502 when any is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		statuses := make(map[string]string, len(checks))
		var failed []string
		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				statuses[check.Name] = "down"
				failed = append(failed, check.Name)
				continue
			}
			statuses[check.Name] = "up"
		}

		if len(failed) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").
				WithDetails(map[string]any{"checks": statuses})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": statuses})
	}
}
