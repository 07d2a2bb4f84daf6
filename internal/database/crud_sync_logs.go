// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/metrics"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// InsertSyncLogEntry appends one audit record. Entries are append-only:
// nothing in this service updates or deletes them.
func (db *DB) InsertSyncLogEntry(ctx context.Context, entry *models.SyncLogEntry) error {
	start := time.Now()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO sync_logs (id, project_id, status, message, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := db.conn.ExecContext(ctx, query,
		entry.ID, entry.ProjectID, string(entry.Status), entry.Message, entry.CreatedAt)
	metrics.ObserveDBQuery("insert", "sync_logs", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert sync log entry: %w", err)
	}

	return nil
}

// ListSyncLogEntries returns the most recent log entries for a project,
// newest first.
func (db *DB) ListSyncLogEntries(ctx context.Context, projectID string, limit int) ([]models.SyncLogEntry, error) {
	start := time.Now()

	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, project_id, status, message, created_at
		FROM sync_logs WHERE project_id = ?
		ORDER BY created_at DESC LIMIT ?`
	rows, err := db.conn.QueryContext(ctx, query, projectID, limit)
	metrics.ObserveDBQuery("select", "sync_logs", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync log entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.SyncLogEntry
	for rows.Next() {
		var (
			e      models.SyncLogEntry
			status string
		)
		if err := rows.Scan(&e.ID, &e.ProjectID, &status, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync log entry: %w", err)
		}
		e.Status = models.SyncStatus(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync log entries: %w", err)
	}

	return entries, nil
}

// CountSyncLogEntries returns the total number of log entries for a project.
func (db *DB) CountSyncLogEntries(ctx context.Context, projectID string) (int64, error) {
	start := time.Now()

	var count int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sync_logs WHERE project_id = ?`, projectID).Scan(&count)
	metrics.ObserveDBQuery("select", "sync_logs", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to count sync log entries: %w", err)
	}

	return count, nil
}
