package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// CollectorsConfig holds all named collector profiles and tracks which one is
// active.
type CollectorsConfig struct {
	Active     string               `toml:"active"`
	Collectors map[string]Collector `toml:"collectors"`
}

// Collector is a named collector profile.
type Collector struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key,omitempty"`
	NATSURL string `toml:"nats_url,omitempty"`
}

func collectorsConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "runline")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "collectors.toml"), nil
}

func loadCollectorsConfig() (CollectorsConfig, error) {
	path, err := collectorsConfigPath()
	if err != nil {
		return CollectorsConfig{}, err
	}
	var cfg CollectorsConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return CollectorsConfig{Collectors: map[string]Collector{}}, nil
		}
		return CollectorsConfig{}, err
	}
	if cfg.Collectors == nil {
		cfg.Collectors = map[string]Collector{}
	}
	return cfg, nil
}

func saveCollectorsConfig(cfg CollectorsConfig) error {
	path, err := collectorsConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Cached active collector values, loaded once per process.
var (
	collectorOnce      sync.Once
	cachedCollectorURL string
	cachedAPIKey       string
	cachedNATSURL      string
)

func loadActiveCollectorOnce() {
	collectorOnce.Do(func() {
		cfg, err := loadCollectorsConfig()
		if err != nil || cfg.Active == "" {
			return
		}
		c, ok := cfg.Collectors[cfg.Active]
		if !ok {
			return
		}
		cachedCollectorURL = c.URL
		cachedAPIKey = c.APIKey
		cachedNATSURL = c.NATSURL
	})
}

func activeCollectorURL() string {
	loadActiveCollectorOnce()
	return cachedCollectorURL
}

func activeCollectorAPIKey() string {
	loadActiveCollectorOnce()
	return cachedAPIKey
}

func activeCollectorNATSURL() string {
	loadActiveCollectorOnce()
	return cachedNATSURL
}
