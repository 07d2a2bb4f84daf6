// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package api

import (
	"net/http"
	"time"
)

// HealthLive reports process liveness. Always 200 while the process can
// serve requests.
//
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, map[string]interface{}{
		"status": "alive",
		"uptime": time.Since(h.startTime).String(),
	})
}

// HealthReady reports readiness: 200 once the database answers, 503
// otherwise.
//
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Database is not reachable", err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
	})
}
