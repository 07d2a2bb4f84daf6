// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package models

import "time"

// DateOnly is the wire format for window boundaries (calendar dates, no
// time-of-day).
const DateOnly = "2006-01-02"

// SyncWindow is an immutable rolling lookback window. Generated fresh on
// every orchestrator invocation relative to that invocation's wall clock;
// never persisted.
type SyncWindow struct {
	// Key names the window, e.g. "7d", "30d".
	Key string `json:"key"`

	// Since is the inclusive lower boundary (calendar date).
	Since time.Time `json:"since"`

	// Until is the inclusive upper boundary (calendar date, the run's "today").
	Until time.Time `json:"until"`
}

// SinceDate returns the since boundary formatted as a calendar date.
func (w SyncWindow) SinceDate() string { return w.Since.Format(DateOnly) }

// UntilDate returns the until boundary formatted as a calendar date.
func (w SyncWindow) UntilDate() string { return w.Until.Format(DateOnly) }

// WindowOutcome records the result of exactly one (project, window) fetch.
// Held in memory only for the duration of one project's run.
type WindowOutcome struct {
	WindowKey string `json:"window_key"`
	Succeeded bool   `json:"succeeded"`
}

// ProjectRunResult accumulates per-window outcomes for one project within a
// single orchestrator run.
type ProjectRunResult struct {
	ProjectID        string   `json:"project_id"`
	ProjectName      string   `json:"project_name"`
	WindowsSucceeded []string `json:"windows_succeeded"`
	WindowsFailed    []string `json:"windows_failed"`
}

// Record appends one window outcome to the appropriate bucket.
func (r *ProjectRunResult) Record(outcome WindowOutcome) {
	if outcome.Succeeded {
		r.WindowsSucceeded = append(r.WindowsSucceeded, outcome.WindowKey)
	} else {
		r.WindowsFailed = append(r.WindowsFailed, outcome.WindowKey)
	}
}

// Status derives the project-level status from the window buckets:
// success iff nothing failed and something succeeded, partial iff both
// buckets are non-empty, error iff nothing succeeded.
func (r *ProjectRunResult) Status() SyncStatus {
	switch {
	case len(r.WindowsSucceeded) > 0 && len(r.WindowsFailed) == 0:
		return SyncStatusSuccess
	case len(r.WindowsSucceeded) > 0:
		return SyncStatusPartial
	default:
		return SyncStatusError
	}
}

// RunSummary is the result of one orchestrator invocation: one entry per
// eligible project, in processing order. Returned to the caller and not
// persisted beyond the per-project log entries.
type RunSummary struct {
	RunID      string             `json:"run_id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Results    []ProjectRunResult `json:"results"`
}

// SyncRunResponse is the HTTP response shape for a completed manual run.
// Results is always present, even when the run touched no projects; the
// dashboard iterates it unconditionally.
type SyncRunResponse struct {
	Success bool               `json:"success"`
	Results []ProjectRunResult `json:"results"`
	Error   string             `json:"error,omitempty"`
}
