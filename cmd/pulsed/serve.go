package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zanclinic/pulse/internal/config"
	"github.com/zanclinic/pulse/internal/events"
	"github.com/zanclinic/pulse/internal/server"
	"github.com/zanclinic/pulse/internal/store/postgres"
	pulsesync "github.com/zanclinic/pulse/internal/sync"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pulse webhook and dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (PULSE_NATS_URL not set)")
		}

		// Create server components.
		pulseServer := server.NewPulseServer(store, publisher, server.Options{
			WebhookSecret: cfg.WebhookSecret,
			BaseURL:       cfg.BaseURL,
			MetricsTZ:     cfg.MetricsTZ,
		})
		if cfg.WebhookSecret == "" {
			logger.Warn("webhook signature verification disabled (PULSE_WEBHOOK_SECRET not set)")
		}

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: pulseServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start export scheduler if a destination is configured.
		var scheduler *pulsesync.Scheduler
		if cfg.SyncInterval > 0 && cfg.SyncS3Bucket != "" {
			s3Dest, err := pulsesync.NewS3Destination(
				context.Background(),
				cfg.SyncS3Bucket,
				cfg.SyncS3Key,
				cfg.SyncS3Region,
				cfg.SyncS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 sync destination", "err", err)
			} else {
				scheduler = pulsesync.NewScheduler(store, []pulsesync.Destination{s3Dest}, cfg.SyncInterval, logger)
				scheduler.Start()
				logger.Info("sync scheduler started",
					"interval", cfg.SyncInterval,
					"bucket", cfg.SyncS3Bucket,
					"key", cfg.SyncS3Key,
				)
			}
		}

		logger.Info("pulse server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("sync scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
