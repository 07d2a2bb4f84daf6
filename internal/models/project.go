// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

// Package models provides data models for the sync service.
package models

import "time"

// SyncStatus is the project-level outcome of one sync run.
type SyncStatus string

const (
	// SyncStatusSuccess means every window synced.
	SyncStatusSuccess SyncStatus = "success"

	// SyncStatusPartial means some windows synced and some failed.
	SyncStatusPartial SyncStatus = "partial"

	// SyncStatusError means no window synced.
	SyncStatusError SyncStatus = "error"
)

// Project is a marketing-analytics project owned by the wider application.
// The sync subsystem reads the eligibility fields (MetaAccountID, Archived)
// and writes only LastSyncAt and LastSyncStatus.
type Project struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	MetaAccountID  *string    `json:"meta_account_id,omitempty"` // nil excludes the project from sync
	Archived       bool       `json:"archived"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	LastSyncStatus SyncStatus `json:"last_sync_status,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// SyncEligible reports whether the project qualifies for the sync run:
// not archived and linked to an external ad account.
func (p *Project) SyncEligible() bool {
	return !p.Archived && p.MetaAccountID != nil && *p.MetaAccountID != ""
}

// ProjectCreateRequest is the payload for creating a project via the API.
type ProjectCreateRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	MetaAccountID *string `json:"meta_account_id,omitempty" validate:"omitempty,min=1"`
}

// SyncLogEntry is one append-only audit record, created once per project per
// orchestrator run. The message encodes the succeeded/failed window keys.
// Entries are never updated or deleted by this service.
type SyncLogEntry struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	Status    SyncStatus `json:"status"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}
