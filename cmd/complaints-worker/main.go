package main

import (
	"context"
	"errors"
	"os"
	"time"

	"complaints/internal/amqp"
	"complaints/internal/backend"
	"complaints/internal/cli"
	"complaints/internal/config"
	"complaints/internal/log"
	"complaints/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting complaints-worker")

	cfg := cli.LoadAndValidateConfig(logger, (*config.Config).ValidateWorker)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	factory := backend.NewFactory(logger)

	source, err := factory.CreateBackend(ctx, bcfg.Mirror(bcfg.Type))
	if err != nil {
		logger.Error("Failed to initialize source backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer source.Close()

	target, err := factory.CreateBackend(ctx, bcfg.Mirror(backend.BackendType(cfg.MirrorBackend)))
	if err != nil {
		logger.Error("Failed to initialize mirror backend", log.FieldError, err, log.FieldBackend, cfg.MirrorBackend)
		os.Exit(1)
	}
	defer target.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror := worker.NewCategoryMirror(target.Gateway)

	// Catch up on events missed while the worker was down.
	if n, err := mirror.StartupSync(ctx, source.Gateway); err != nil {
		logger.Error("Startup sync failed", log.FieldError, err, log.FieldOperation, log.OpSync)
	} else {
		logger.Info("Startup sync complete", log.FieldCount, n)
	}

	if err := amqpClient.ConsumeCategoryAdded(ctx, mirror.HandleCategoryAdded); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
