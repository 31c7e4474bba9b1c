package main

import (
	"context"
	"os"
	"time"

	"profilo/internal/amqp"
	"profilo/internal/backend"
	"profilo/internal/cli"
	"profilo/internal/core"
	"profilo/internal/log"
	gsheet "profilo/internal/sheets/google"
	"profilo/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("starting profilo-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the sync worker")
		os.Exit(1)
	}

	store, err := backend.Open(cfg)
	if err != nil {
		logger.Error("failed to open snapshot store", log.FieldError, err, log.FieldBackend, cfg.SnapshotBackend)
		os.Exit(1)
	}

	writer, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if store.Cleanup != nil {
			if err := store.Cleanup(); err != nil {
				logger.Error("store close error", log.FieldError, err)
			}
		}
	})

	amqpClient, err := amqp.DialWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	rules := core.Rules{TrackPrefix: cfg.TrackPrefix, TrainingMarker: cfg.TrainingMarker}
	syncWorker := worker.NewSyncWorker(store.Store, writer, rules)

	if err := amqpClient.ConsumeSnapshotSync(ctx, syncWorker.HandleSyncMessage); err != nil && err != context.Canceled {
		logger.Error("message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
}
