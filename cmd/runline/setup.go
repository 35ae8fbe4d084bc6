package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alfredjeanlab/runline/internal/collector"
	"github.com/alfredjeanlab/runline/internal/config"
	"github.com/alfredjeanlab/runline/internal/emitter"
	"github.com/alfredjeanlab/runline/internal/events"
	"github.com/alfredjeanlab/runline/internal/history"
)

// resolveConfig loads environment configuration, then fills any gaps from the
// active collector profile. Environment always wins.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.CollectorURL == "" {
		cfg.CollectorURL = activeCollectorURL()
	}
	if cfg.APIKey == "" {
		cfg.APIKey = activeCollectorAPIKey()
	}
	if cfg.NATSURL == "" {
		cfg.NATSURL = activeCollectorNATSURL()
	}
	return cfg, nil
}

// newPipeline builds the emit pipeline for the given config. The returned
// cleanup function closes the bus and history connections.
func newPipeline(cfg *config.Config) (*emitter.Pipeline, func(), error) {
	if err := cfg.RequireCollector(); err != nil {
		return nil, nil, err
	}

	client, err := collector.New(cfg.CollectorURL, cfg.APIKey, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}

	var bus events.Publisher = &events.NoopPublisher{}
	if cfg.NATSURL != "" {
		bus, err = events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect event bus: %w", err)
		}
	}

	var hist history.Store
	if cfg.DatabaseURL != "" {
		hist, err = history.New(cfg.DatabaseURL)
		if err != nil {
			bus.Close()
			return nil, nil, fmt.Errorf("open history store: %w", err)
		}
	}

	p := &emitter.Pipeline{
		Collector: client,
		Bus:       bus,
		History:   hist,
		Logger:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	cleanup := func() {
		bus.Close()
		if hist != nil {
			hist.Close()
		}
	}
	return p, cleanup, nil
}
