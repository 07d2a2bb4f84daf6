// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

// Package config provides layered configuration for the sync service:
// struct defaults, then an optional YAML file, then environment variables.
package config

import "time"

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	MetaAds  MetaAdsConfig  `koanf:"meta_ads"`
	Sync     SyncConfig     `koanf:"sync"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// CORSOrigins lists the allowed browser origins. Empty denies all
	// cross-origin requests; there is no wildcard default.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests allows this many requests per client IP per
	// RateLimitWindow. 0 disables rate limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"min=0"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" opens an in-memory database.
	Path string `koanf:"path" validate:"required"`

	// MaxMemory caps DuckDB's memory usage, e.g. "1GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0"`
}

// MetaAdsConfig holds the connection to the hosted meta-ads-sync operation.
type MetaAdsConfig struct {
	// Endpoint is the URL of the per-window sync operation.
	Endpoint string `koanf:"endpoint" validate:"omitempty,url"`

	// AccessToken authenticates calls to the sync operation. Its absence is
	// not a load error: the read API still works, but the orchestrator
	// refuses to start a run without it.
	AccessToken string `koanf:"access_token"`

	// FetchTimeout bounds a single window fetch. Must stay below any
	// platform-imposed request timeout so every fetch observes a definite
	// outcome.
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"min=1s"`

	// RequestsPerSecond is a hard rate floor under the pacing delays.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gt=0"`
}

// SyncConfig holds the orchestrator's scheduling and pacing knobs.
type SyncConfig struct {
	// Enabled controls whether the periodic scheduler runs. Manual runs via
	// the API work either way.
	Enabled bool `koanf:"enabled"`

	// Interval is the time between scheduled orchestrator runs.
	Interval time.Duration `koanf:"interval" validate:"min=1m"`

	// LookbackDays is the fixed set of rolling window day-counts.
	LookbackDays []int `koanf:"lookback_days" validate:"min=1,dive,min=1"`

	// WindowDelay is the fixed pause between window fetches for one project.
	WindowDelay time.Duration `koanf:"window_delay" validate:"min=0"`

	// ProjectDelay is the fixed pause between projects.
	ProjectDelay time.Duration `koanf:"project_delay" validate:"min=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8787,
			Timeout:           30 * time.Second,
			CORSOrigins:       []string{},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Database: DatabaseConfig{
			Path:      "/data/metricaslisboa.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		MetaAds: MetaAdsConfig{
			Endpoint:          "",
			AccessToken:       "",
			FetchTimeout:      55 * time.Second,
			RequestsPerSecond: 2,
		},
		Sync: SyncConfig{
			Enabled:      true,
			Interval:     6 * time.Hour,
			LookbackDays: []int{7, 14, 30, 60, 90},
			WindowDelay:  10 * time.Second,
			ProjectDelay: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
