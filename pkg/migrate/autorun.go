package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/hubs-storefront/pkg/config"
	"github.com/angelmondragon/hubs-storefront/pkg/db"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

// MaybeAutoRun applies pending migrations at startup when SQL storage is
// selected and auto-migration is enabled.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.Storage.UsesSQL() || !cfg.Storage.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": cfg.Storage.Driver})
	logg.Info(ctx, "running goose migrations (auto-run)")

	if err := Run(ctx, sqlDB, cfg.Storage.Driver, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
