// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance. validator caches struct
// metadata, so a singleton avoids repeated reflection.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks that the configuration is internally consistent.
// Struct-tag rules run first, then cross-field rules that tags cannot express.
func (c *Config) Validate() error {
	if err := Validator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	return c.validateMetaAds()
}

// validateSync checks the window day-counts for duplicates. A duplicate
// day-count would give two windows the same key and break the one-outcome-
// per-window invariant.
func (c *Config) validateSync() error {
	seen := make(map[int]bool, len(c.Sync.LookbackDays))
	for _, d := range c.Sync.LookbackDays {
		if seen[d] {
			return fmt.Errorf("SYNC_LOOKBACK_DAYS contains duplicate day-count %d", d)
		}
		seen[d] = true
	}
	return nil
}

// validateMetaAds checks that the fetch timeout stays below the server
// timeout headroom when an endpoint is configured. A token without an
// endpoint (or vice versa) is deferred to run time, not a load error.
func (c *Config) validateMetaAds() error {
	if c.MetaAds.Endpoint == "" {
		return nil
	}
	if c.MetaAds.FetchTimeout <= 0 {
		return fmt.Errorf("META_ADS_TIMEOUT must be positive")
	}
	return nil
}
