package main

import (
	"context"
	"os"
	"time"

	"profilo/internal/amqp"
	"profilo/internal/backend"
	"profilo/internal/cli"
	"profilo/internal/core"
	apphttp "profilo/internal/http"
	"profilo/internal/intra"
	"profilo/internal/log"
	"profilo/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	store, err := backend.Open(cfg)
	if err != nil {
		logger.Error("failed to open snapshot store", log.FieldError, err, log.FieldBackend, cfg.SnapshotBackend)
		os.Exit(1)
	}

	// AMQP is optional. Without a broker the sheet export simply never
	// happens and the server runs standalone.
	var publisher services.SyncPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("failed to connect to AMQP, continuing without sync", log.FieldError, err)
		} else {
			publisher = amqpClient
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	platform := intra.NewClient(cfg.PlatformBaseURL)
	rules := core.Rules{TrackPrefix: cfg.TrackPrefix, TrainingMarker: cfg.TrainingMarker}
	service := services.NewProfileService(platform, store.Store, publisher, rules)

	server, err := apphttp.NewServer(cfg, service, logger)
	if err != nil {
		logger.Error("failed to build server", log.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Error("AMQP close error", log.FieldError, err)
			}
		}
		if store.Cleanup != nil {
			if err := store.Cleanup(); err != nil {
				logger.Error("store close error", log.FieldError, err)
			}
		}
	})

	go server.RunJanitor(ctx)

	logger.Info("starting profilo server",
		"port", cfg.Port,
		log.FieldBackend, cfg.SnapshotBackend,
		"platform", cfg.PlatformBaseURL)
	if err := server.Start(); err != nil {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
}
