// Package config loads CLI configuration from a JSON file with environment
// overrides. A .env file in the working directory is honored when present.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config is the CLI configuration.
type Config struct {
	APIToken      string `json:"api_token"`
	BaseURL       string `json:"base_url"`
	LogLevel      string `json:"log_level"`
	PollInterval  string `json:"poll_interval"`
	MaxConcurrent int    `json:"max_concurrent"`
	DataDir       string `json:"data_dir"`
	Listen        struct {
		Addr   string `json:"addr"`
		Secret string `json:"secret"`
	} `json:"listen"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".augur", "config.json")
}

// Load reads configuration from path, writing defaults there on first run.
// Environment variables take precedence over the file; a .env file is
// loaded first if one exists.
func Load(path string) (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:       "https://api.augur.run/v1",
		LogLevel:      "info",
		PollInterval:  "500ms",
		MaxConcurrent: 4,
		DataDir:       filepath.Join(os.Getenv("HOME"), ".augur"),
	}
	cfg.Listen.Addr = ":8090"

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := writeDefaults(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if token := os.Getenv("AUGUR_API_TOKEN"); token != "" {
		cfg.APIToken = token
	}
	if baseURL := os.Getenv("AUGUR_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if interval := os.Getenv("AUGUR_POLL_INTERVAL"); interval != "" {
		cfg.PollInterval = interval
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// PollIntervalDuration parses the configured poll interval, falling back to
// 500ms on a malformed value.
func (c *Config) PollIntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

func writeDefaults(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
