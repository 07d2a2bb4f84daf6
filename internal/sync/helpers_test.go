// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"context"
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// mockFetcher scripts window outcomes per (project, window) pair.
type mockFetcher struct {
	// outcomes maps "projectID/windowKey" to the scripted result.
	// Missing keys succeed.
	outcomes map[string]bool

	// calls records every fetch in order.
	calls []string

	hasCredential bool
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{outcomes: map[string]bool{}, hasCredential: true}
}

func (m *mockFetcher) HasCredential() bool { return m.hasCredential }

func (m *mockFetcher) FetchWindow(_ context.Context, project models.Project, window models.SyncWindow) models.WindowOutcome {
	key := project.ID + "/" + window.Key
	m.calls = append(m.calls, key)

	succeeded, scripted := m.outcomes[key]
	if !scripted {
		succeeded = true
	}
	return models.WindowOutcome{WindowKey: window.Key, Succeeded: succeeded}
}

// mockStore records status writes and log appends.
type mockStore struct {
	updateSyncStatus func(ctx context.Context, id string, status models.SyncStatus, syncedAt time.Time) error
	insertLogEntry   func(ctx context.Context, entry *models.SyncLogEntry) error

	statusWrites []statusWrite
	logEntries   []models.SyncLogEntry
}

type statusWrite struct {
	projectID string
	status    models.SyncStatus
	syncedAt  time.Time
}

func (m *mockStore) UpdateProjectSyncStatus(ctx context.Context, id string, status models.SyncStatus, syncedAt time.Time) error {
	if m.updateSyncStatus != nil {
		if err := m.updateSyncStatus(ctx, id, status, syncedAt); err != nil {
			return err
		}
	}
	m.statusWrites = append(m.statusWrites, statusWrite{projectID: id, status: status, syncedAt: syncedAt})
	return nil
}

func (m *mockStore) InsertSyncLogEntry(ctx context.Context, entry *models.SyncLogEntry) error {
	if m.insertLogEntry != nil {
		if err := m.insertLogEntry(ctx, entry); err != nil {
			return err
		}
	}
	m.logEntries = append(m.logEntries, *entry)
	return nil
}

// mockSource scripts the eligible-project read.
type mockSource struct {
	projects []models.Project
	err      error
	queried  bool
}

func (m *mockSource) ListSyncEligibleProjects(context.Context) ([]models.Project, error) {
	m.queried = true
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

// mockPublisher captures published run summaries.
type mockPublisher struct {
	summaries []*models.RunSummary
	err       error
}

func (m *mockPublisher) PublishRunCompleted(summary *models.RunSummary) error {
	if m.err != nil {
		return m.err
	}
	m.summaries = append(m.summaries, summary)
	return nil
}

func testProject(id, name string) models.Project {
	account := "act_" + id
	return models.Project{ID: id, Name: name, MetaAccountID: &account}
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
}

func testClock() func() time.Time {
	return func() time.Time { return fixedNow() }
}
