package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"complaints/internal/admin"
	"complaints/internal/amqp"
	"complaints/internal/backend"
	"complaints/internal/cli"
	"complaints/internal/config"
	apphttp "complaints/internal/http"
	"complaints/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger, (*config.Config).Validate)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(context.Background(), bcfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	opts := []admin.Option{
		admin.WithRejectDuplicates(cfg.RejectDuplicateCategories),
		admin.WithLogger(logger.WithComponent(log.ComponentAdmin)),
	}

	// Category events are optional; the dashboard works without a broker.
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without category events", log.FieldError, err)
		} else {
			opts = append(opts, admin.WithEvents(events))
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	session := admin.NewSession(res.Gateway, opts...)

	srv := apphttp.NewServer(":"+cfg.Port, session, logger, cfg.StoreTimeout,
		apphttp.WithRateLimit(cfg.RateLimitPerMinute, time.Minute))
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	// Both collections load concurrently; /readyz reports not_ready until done.
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		defer cancel()
		if err := session.Load(loadCtx); err != nil {
			logger.Error("Initial load incomplete", log.FieldError, err, log.FieldOperation, log.OpStartup)
			return
		}
		logger.Info("Session loaded",
			"categories", len(session.Categories()),
			"submissions", len(session.Submissions()))
	}()

	logger.Info("Starting complaints admin server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)

	if events != nil {
		if err := events.Close(); err != nil {
			logger.Warn("AMQP close error", log.FieldError, err)
		}
	}
	if err := res.Close(); err != nil {
		logger.Warn("Backend cleanup error", log.FieldError, err)
	}
	logger.Info("Server stopped gracefully")
}
