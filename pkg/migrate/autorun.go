package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/db"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	return Up(ctx, logg, client)
}

// Up applies every embedded migration for the client's driver.
func Up(ctx context.Context, logg *logger.Logger, client *db.Client) error {
	if logg == nil {
		logg = logger.Nop()
	}
	src, err := EmbeddedSource(client.Driver())
	if err != nil {
		return err
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"driver": client.Driver(), "dir": src.Dir})
	logg.Info(ctx, "running goose migrations")

	if err := Run(ctx, sqlDB, src, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
