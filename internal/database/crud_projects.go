// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/metrics"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

const projectColumns = `id, name, meta_account_id, archived, last_sync_at, last_sync_status, created_at, updated_at`

// CreateProject inserts a new project record.
func (db *DB) CreateProject(ctx context.Context, project *models.Project) error {
	start := time.Now()

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	project.UpdatedAt = project.CreatedAt

	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		project.ID, project.Name, project.MetaAccountID, project.Archived,
		project.LastSyncAt, nullableStatus(project.LastSyncStatus),
		project.CreatedAt, project.UpdatedAt,
	)
	metrics.ObserveDBQuery("insert", "projects", start, err)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetProject retrieves a project by ID.
func (db *DB) GetProject(ctx context.Context, id string) (*models.Project, error) {
	start := time.Now()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := db.conn.QueryRowContext(ctx, query, id)

	project, err := scanProject(row)
	metrics.ObserveDBQuery("select", "projects", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// ListProjects returns all projects ordered by creation time.
func (db *DB) ListProjects(ctx context.Context) ([]models.Project, error) {
	start := time.Now()

	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.ObserveDBQuery("select", "projects", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectProjects(rows)
}

// ListSyncEligibleProjects returns all active projects with an external ad
// account linked: archived = false and meta_account_id present. Ordered by
// creation time so run order is deterministic.
func (db *DB) ListSyncEligibleProjects(ctx context.Context) ([]models.Project, error) {
	start := time.Now()

	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE archived = false AND meta_account_id IS NOT NULL AND meta_account_id != ''
		ORDER BY created_at`
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.ObserveDBQuery("select", "projects", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync-eligible projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectProjects(rows)
}

// UpdateProjectSyncStatus writes the two sync-status fields the orchestrator
// owns. Called exactly once per project per run, after all its windows have
// been attempted.
func (db *DB) UpdateProjectSyncStatus(ctx context.Context, id string, status models.SyncStatus, syncedAt time.Time) error {
	start := time.Now()

	query := `UPDATE projects SET last_sync_at = ?, last_sync_status = ?, updated_at = ? WHERE id = ?`
	res, err := db.conn.ExecContext(ctx, query, syncedAt, string(status), time.Now().UTC(), id)
	metrics.ObserveDBQuery("update", "projects", start, err)
	if err != nil {
		return fmt.Errorf("failed to update project sync status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanProject.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	var (
		p          models.Project
		account    sql.NullString
		lastSyncAt sql.NullTime
		lastStatus sql.NullString
	)

	err := s.Scan(&p.ID, &p.Name, &account, &p.Archived, &lastSyncAt, &lastStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if account.Valid {
		p.MetaAccountID = &account.String
	}
	if lastSyncAt.Valid {
		t := lastSyncAt.Time
		p.LastSyncAt = &t
	}
	if lastStatus.Valid {
		p.LastSyncStatus = models.SyncStatus(lastStatus.String)
	}

	return &p, nil
}

func collectProjects(rows *sql.Rows) ([]models.Project, error) {
	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// nullableStatus maps the zero-value status to NULL so unset stays unset.
func nullableStatus(s models.SyncStatus) any {
	if s == "" {
		return nil
	}
	return string(s)
}
