package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	CollectorURL string // RUNLINE_URL (required for emitting; may carry query params)
	APIKey       string // RUNLINE_API_KEY (optional)
	Namespace    string // RUNLINE_NAMESPACE (default "default")
	JobName      string // RUNLINE_JOB_NAME (optional; wrap falls back to the tool name)
	ParentID     string // RUNLINE_PARENT_ID (optional "namespace/job-name/run-id")
	NATSURL      string // RUNLINE_NATS_URL (optional, empty = no bus mirror)
	DatabaseURL  string // RUNLINE_DATABASE_URL (optional, empty = no history store)

	// Artifact archive settings
	ArchiveS3Bucket   string // RUNLINE_ARCHIVE_S3_BUCKET (enables S3 when set)
	ArchiveS3Prefix   string // RUNLINE_ARCHIVE_S3_PREFIX (default "runline/artifacts")
	ArchiveS3Region   string // RUNLINE_ARCHIVE_S3_REGION (default "us-east-1")
	ArchiveS3Endpoint string // RUNLINE_ARCHIVE_S3_ENDPOINT (custom endpoint for MinIO)

	Timeout time.Duration // RUNLINE_TIMEOUT (default 10s; per collector request)
}

func Load() (*Config, error) {
	c := &Config{
		CollectorURL:      os.Getenv("RUNLINE_URL"),
		APIKey:            os.Getenv("RUNLINE_API_KEY"),
		Namespace:         envOrDefault("RUNLINE_NAMESPACE", "default"),
		JobName:           os.Getenv("RUNLINE_JOB_NAME"),
		ParentID:          os.Getenv("RUNLINE_PARENT_ID"),
		NATSURL:           os.Getenv("RUNLINE_NATS_URL"),
		DatabaseURL:       os.Getenv("RUNLINE_DATABASE_URL"),
		ArchiveS3Bucket:   os.Getenv("RUNLINE_ARCHIVE_S3_BUCKET"),
		ArchiveS3Prefix:   envOrDefault("RUNLINE_ARCHIVE_S3_PREFIX", "runline/artifacts"),
		ArchiveS3Region:   envOrDefault("RUNLINE_ARCHIVE_S3_REGION", "us-east-1"),
		ArchiveS3Endpoint: os.Getenv("RUNLINE_ARCHIVE_S3_ENDPOINT"),
	}

	timeoutStr := envOrDefault("RUNLINE_TIMEOUT", "10s")
	d, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("RUNLINE_TIMEOUT: %w", err)
	}
	c.Timeout = d

	return c, nil
}

// RequireCollector returns an error when no collector URL is configured.
// Commands that emit events call this before doing anything else.
func (c *Config) RequireCollector() error {
	if c.CollectorURL == "" {
		return fmt.Errorf("RUNLINE_URL is required (no collector configured)")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
