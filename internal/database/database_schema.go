// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the tables this service owns. Statements are
// idempotent so startup is safe against an existing database file.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id               VARCHAR PRIMARY KEY,
		name             VARCHAR NOT NULL,
		meta_account_id  VARCHAR,
		archived         BOOLEAN NOT NULL DEFAULT false,
		last_sync_at     TIMESTAMP,
		last_sync_status VARCHAR,
		created_at       TIMESTAMP NOT NULL,
		updated_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sync_logs (
		id         VARCHAR PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		status     VARCHAR NOT NULL,
		message    VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sync_logs_project ON sync_logs (project_id, created_at)`,
}

// initSchema creates all tables and indexes.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
