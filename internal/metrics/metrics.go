// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

// Package metrics exposes Prometheus instrumentation for the sync service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Orchestrator metrics

	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of orchestrator runs by terminal state",
		},
		[]string{"state"}, // "completed", "aborted"
	)

	SyncRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_run_duration_seconds",
			Help:    "Wall-clock duration of one orchestrator run",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
		},
	)

	SyncProjectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_projects_total",
			Help: "Projects processed per run outcome",
		},
		[]string{"status"}, // "success", "partial", "error"
	)

	// Window fetch metrics

	WindowFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_window_fetches_total",
			Help: "Window fetch attempts by outcome",
		},
		[]string{"window", "outcome"}, // outcome: "success", "failure"
	)

	WindowFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_window_fetch_duration_seconds",
			Help:    "Duration of a single window fetch against the ads API",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 55, 60},
		},
		[]string{"window"},
	)

	// Database metrics

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveDBQuery records one database operation.
func ObserveDBQuery(operation, table string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// ObserveWindowFetch records one window fetch attempt.
func ObserveWindowFetch(window string, start time.Time, succeeded bool) {
	WindowFetchDuration.WithLabelValues(window).Observe(time.Since(start).Seconds())
	outcome := "failure"
	if succeeded {
		outcome = "success"
	}
	WindowFetchesTotal.WithLabelValues(window, outcome).Inc()
}

// ObserveAPIRequest records one HTTP request.
func ObserveAPIRequest(method, endpoint string, statusCode int, start time.Time) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}
