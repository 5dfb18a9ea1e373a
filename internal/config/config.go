package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL   string // PULSE_DATABASE_URL (required)
	HTTPAddr      string // PULSE_HTTP_ADDR (default ":8080")
	BaseURL       string // PULSE_BASE_URL (default "http://localhost:8080"; used in webhook config docs)
	NATSURL       string // PULSE_NATS_URL (optional, empty = no events)
	AuthToken     string // PULSE_AUTH_TOKEN (optional, empty = dashboard API auth disabled)
	WebhookSecret string // PULSE_WEBHOOK_SECRET (optional, empty = signature check disabled)
	MetricsTZ     *time.Location // PULSE_METRICS_TZ (IANA name, default UTC)

	// Sync settings
	SyncInterval   time.Duration // PULSE_SYNC_INTERVAL (default 15m; 0 = disabled)
	SyncS3Bucket   string        // PULSE_SYNC_S3_BUCKET (enables S3 export when set)
	SyncS3Endpoint string        // PULSE_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // PULSE_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // PULSE_SYNC_S3_KEY (default "pulse/events.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("PULSE_DATABASE_URL"),
		HTTPAddr:       envOrDefault("PULSE_HTTP_ADDR", ":8080"),
		BaseURL:        envOrDefault("PULSE_BASE_URL", "http://localhost:8080"),
		NATSURL:        os.Getenv("PULSE_NATS_URL"),
		AuthToken:      os.Getenv("PULSE_AUTH_TOKEN"),
		WebhookSecret:  os.Getenv("PULSE_WEBHOOK_SECRET"),
		SyncS3Bucket:   os.Getenv("PULSE_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("PULSE_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("PULSE_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("PULSE_SYNC_S3_KEY", "pulse/events.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("PULSE_DATABASE_URL is required")
	}

	tzName := envOrDefault("PULSE_METRICS_TZ", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("PULSE_METRICS_TZ: %w", err)
	}
	c.MetricsTZ = loc

	intervalStr := envOrDefault("PULSE_SYNC_INTERVAL", "15m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("PULSE_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
