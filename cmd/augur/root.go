package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/augur/internal/config"
	"github.com/user/augur/internal/logger"
	"github.com/user/augur/pkg/augur"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "augur",
	Short: "Run and track jobs on a hosted model-inference API",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
}

// loadConfig reads the CLI config and initializes logging. Commands call it
// at the top of their RunE.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.LogLevel)
	return cfg
}

// newClient builds an API client from the CLI config.
func newClient(cfg *config.Config) *augur.Client {
	return augur.New(&augur.Config{
		APIToken:     cfg.APIToken,
		BaseURL:      cfg.BaseURL,
		PollInterval: cfg.PollIntervalDuration(),
		Logger:       logger.Get(),
	})
}

// parseInput assembles a job input from repeated key=value flags and an
// optional JSON document. JSON values win on conflicting keys.
func parseInput(pairs []string, jsonDoc string) (map[string]any, error) {
	input := map[string]any{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid input %q, expected key=value", pair)
		}
		input[key] = value
	}
	if jsonDoc != "" {
		if err := json.Unmarshal([]byte(jsonDoc), &input); err != nil {
			return nil, fmt.Errorf("parse --json input: %w", err)
		}
	}
	return input, nil
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
