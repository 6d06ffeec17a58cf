package main

import (
	"context"
	"fmt"
	"os"

	"github.com/angelmondragon/scancart-backend/internal/apikeys"
	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/db"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/joho/godotenv"
)

// apikey issues a new shared API key and prints it to stdout.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "apikey"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	verifier, err := apikeys.NewVerifier(apikeys.VerifierParams{
		Store:  apikeys.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create verifier", err)
		os.Exit(1)
	}

	key, err := verifier.Issue(ctx)
	if err != nil {
		logg.Error(ctx, "failed to issue api key", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "uuid", key.UUID), "api key issued")
	fmt.Println(key.Key)
}
