// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"fmt"
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// WindowCatalog returns the ordered set of rolling lookback windows anchored
// to ref. Every window shares the same until boundary (the calendar date of
// ref in UTC); each since boundary is until minus the configured day-count.
// Pure and deterministic for a given ref; the reference instant is injected
// so runs are reproducible in tests.
func WindowCatalog(ref time.Time, lookbackDays []int) []models.SyncWindow {
	until := dateOf(ref)

	windows := make([]models.SyncWindow, 0, len(lookbackDays))
	for _, days := range lookbackDays {
		windows = append(windows, models.SyncWindow{
			Key:   fmt.Sprintf("%dd", days),
			Since: until.AddDate(0, 0, -days),
			Until: until,
		})
	}

	return windows
}

// dateOf truncates an instant to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
