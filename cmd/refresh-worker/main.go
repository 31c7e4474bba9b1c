package main

import (
	"context"
	"os"
	"time"

	"profilo/internal/backend"
	"profilo/internal/cli"
	"profilo/internal/core"
	"profilo/internal/intra"
	"profilo/internal/log"
	"profilo/internal/services"
	"profilo/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("starting refresh-worker", "interval", cfg.RefreshInterval.String())

	store, err := backend.Open(cfg)
	if err != nil {
		logger.Error("failed to open snapshot store", log.FieldError, err, log.FieldBackend, cfg.SnapshotBackend)
		os.Exit(1)
	}

	platform := intra.NewClient(cfg.PlatformBaseURL)
	rules := core.Rules{TrackPrefix: cfg.TrackPrefix, TrainingMarker: cfg.TrainingMarker}
	service := services.NewProfileService(platform, store.Store, nil, rules)
	refresher := worker.NewRefreshWorker(store.Store, service, cfg.TokenMargin)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if store.Cleanup != nil {
			if err := store.Cleanup(); err != nil {
				logger.Error("store close error", log.FieldError, err)
			}
		}
	})

	if err := refresher.Run(ctx, cfg.RefreshInterval); err != nil && err != context.Canceled {
		logger.Error("refresh loop failed", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
}
