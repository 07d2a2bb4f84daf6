// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/metrics"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// Store is the persistence surface the aggregator writes to. Implemented by
// *database.DB.
type Store interface {
	UpdateProjectSyncStatus(ctx context.Context, id string, status models.SyncStatus, syncedAt time.Time) error
	InsertSyncLogEntry(ctx context.Context, entry *models.SyncLogEntry) error
}

// StatusWriter derives a project-level status from a completed run result
// and persists it. This is the only point where the subsystem mutates
// persistent state; it runs once per project, after all its windows have
// been attempted, never mid-run.
type StatusWriter struct {
	store Store
	now   func() time.Time
}

// NewStatusWriter creates a writer. The clock is injected for tests.
func NewStatusWriter(store Store, now func() time.Time) *StatusWriter {
	if now == nil {
		now = time.Now
	}
	return &StatusWriter{store: store, now: now}
}

// Finalize computes the status, updates the project record, and appends one
// sync log entry. Both writes are single-record operations; no transaction
// spans them.
func (w *StatusWriter) Finalize(ctx context.Context, result models.ProjectRunResult) (models.SyncStatus, error) {
	status := result.Status()
	syncedAt := w.now().UTC()

	if err := w.store.UpdateProjectSyncStatus(ctx, result.ProjectID, status, syncedAt); err != nil {
		return status, fmt.Errorf("updating project %s sync status: %w", result.ProjectID, err)
	}

	entry := &models.SyncLogEntry{
		ProjectID: result.ProjectID,
		Status:    status,
		Message:   logMessage(result),
		CreatedAt: syncedAt,
	}
	if err := w.store.InsertSyncLogEntry(ctx, entry); err != nil {
		return status, fmt.Errorf("appending sync log for project %s: %w", result.ProjectID, err)
	}

	metrics.SyncProjectsTotal.WithLabelValues(string(status)).Inc()

	return status, nil
}

// logMessage encodes the window-key lists for the audit trail.
func logMessage(result models.ProjectRunResult) string {
	return fmt.Sprintf("synced: %v; failed: %v", result.WindowsSucceeded, result.WindowsFailed)
}
