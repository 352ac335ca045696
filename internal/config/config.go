// Package config loads the server and REPL settings from an optional
// YAML file with environment-variable overrides. A .env file in the
// working directory is honored when present.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`

	// LogLevel is the zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// RepairJSON enables best-effort repair of malformed JSON request
	// bodies before they are rejected.
	RepairJSON bool `yaml:"repair_json"`

	// HistoryFile is the REPL history location. Empty means
	// ~/.symbridge_history.
	HistoryFile string `yaml:"history_file"`
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
	}
}

// Load reads path (when non-empty) over the defaults, then applies
// SYMBRIDGE_* environment overrides. Unknown YAML keys are rejected.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("SYMBRIDGE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SYMBRIDGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SYMBRIDGE_REPAIR_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: SYMBRIDGE_REPAIR_JSON: %w", err)
		}
		cfg.RepairJSON = b
	}
	if v := os.Getenv("SYMBRIDGE_HISTORY_FILE"); v != "" {
		cfg.HistoryFile = v
	}
	return cfg, nil
}
