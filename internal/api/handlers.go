// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package api

import (
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/database"
	syncpkg "github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/sync"
)

// Handler holds the dependencies of the HTTP handlers.
//
// Handler methods are split across files:
//   - handlers_sync.go: manual sync trigger and status
//   - handlers_projects.go: project CRUD and sync logs
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	db        *database.DB
	scheduler *syncpkg.Scheduler
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(db *database.DB, scheduler *syncpkg.Scheduler) *Handler {
	return &Handler{
		db:        db,
		scheduler: scheduler,
		startTime: time.Now(),
	}
}
