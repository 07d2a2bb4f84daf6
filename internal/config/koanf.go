// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order of
// priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/metricaslisboa/config.yaml",
	"/etc/metricaslisboa/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from three layers: struct defaults, an
// optional YAML file, and environment variables (highest priority).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Transform known environment variable names to koanf paths:
	// META_ADS_ACCESS_TOKEN -> meta_ads.access_token
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Lookback days and CORS origins may arrive from env as
	// comma-separated strings.
	if err := normalizeLookbackDays(k); err != nil {
		return nil, err
	}
	if err := normalizeCORSOrigins(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to config paths.
// Unmapped variables return empty string and are skipped, so stray
// environment variables cannot pollute the config.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":         "server.host",
		"http_port":         "server.port",
		"http_timeout":      "server.timeout",
		"cors_origins":      "server.cors_origins",
		"rate_limit":        "server.rate_limit_requests",
		"rate_limit_window": "server.rate_limit_window",

		// Database mappings
		"database_path":     "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",

		// Meta Ads mappings
		"meta_ads_endpoint":     "meta_ads.endpoint",
		"meta_ads_access_token": "meta_ads.access_token",
		"meta_ads_timeout":      "meta_ads.fetch_timeout",
		"meta_ads_rps":          "meta_ads.requests_per_second",

		// Sync mappings
		"sync_enabled":       "sync.enabled",
		"sync_interval":      "sync.interval",
		"sync_lookback_days": "sync.lookback_days",
		"sync_window_delay":  "sync.window_delay",
		"sync_project_delay": "sync.project_delay",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// normalizeLookbackDays converts a comma-separated sync.lookback_days string
// (the env-var form, e.g. "7,14,30") into an int slice.
func normalizeLookbackDays(k *koanf.Koanf) error {
	raw, ok := k.Get("sync.lookback_days").(string)
	if !ok {
		return nil
	}

	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid SYNC_LOOKBACK_DAYS entry %q: %w", p, err)
		}
		days = append(days, n)
	}

	return k.Set("sync.lookback_days", days)
}

// normalizeCORSOrigins converts a comma-separated server.cors_origins string
// into a string slice.
func normalizeCORSOrigins(k *koanf.Koanf) error {
	raw, ok := k.Get("server.cors_origins").(string)
	if !ok {
		return nil
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}

	return k.Set("server.cors_origins", origins)
}
