package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/scancart-backend/internal/scancart"
	"github.com/angelmondragon/scancart-backend/pkg/cartapi"
	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/metrics"
)

// scanner is a terminal cart client. Each input line is either a command or
// a barcode to scan.
func main() {
	logg := logger.New(logger.Options{ServiceName: "scanner", Output: os.Stderr})

	_ = godotenv.Load()

	metricsAddr := flag.String("metrics-addr", "", "serve client sync metrics on this address (e.g. :9102)")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "scanner",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Output:      os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := cartapi.NewClient(
		cartapi.WithBaseURL(cfg.Client.BaseURL),
		cartapi.WithAPIKey(cfg.Client.APIKey),
		cartapi.WithTimeout(cfg.Client.Timeout),
	)
	if cfg.Client.Password != "" {
		if err := client.Login(ctx, cfg.Client.UserID, cfg.Client.Password); err != nil {
			logg.Error(ctx, "login failed", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	syncMetrics := metrics.NewCartSyncMetrics(registry)
	if *metricsAddr != "" {
		srv := &http.Server{
			Addr:              *metricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logg.Error(ctx, "metrics server stopped", err)
			}
		}()
		defer srv.Close()
	}

	session, err := scancart.NewSession(client, scancart.Options{
		UserID:            cfg.Client.UserID,
		DeleteConcurrency: cfg.Client.DeleteConcurrency,
		Logger:            logg,
		Metrics:           syncMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to start session", err)
		os.Exit(1)
	}

	if err := run(ctx, session, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "scanner stopped", err)
		os.Exit(1)
	}
}
