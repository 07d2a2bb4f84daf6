// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/config"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// blockingFetcher parks inside the first fetch until released, so tests can
// hold a run in flight.
type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (f *blockingFetcher) HasCredential() bool { return true }

func (f *blockingFetcher) FetchWindow(ctx context.Context, _ models.Project, window models.SyncWindow) models.WindowOutcome {
	select {
	case f.started <- struct{}{}:
	default:
	}
	select {
	case <-f.release:
	case <-ctx.Done():
	}
	return models.WindowOutcome{WindowKey: window.Key, Succeeded: true}
}

func newTestScheduler(fetcher WindowFetcher, creds CredentialSource, source *mockSource, cfg *config.SyncConfig) *Scheduler {
	runner := NewProjectRunner(fetcher, NopPacer{})
	writer := NewStatusWriter(&mockStore{}, testClock())
	orch := NewOrchestrator(source, creds, runner, writer, NopPacer{}, nil, []int{7, 14}, testClock())
	return NewScheduler(orch, cfg)
}

func TestScheduler_TriggerSync(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	source := &mockSource{projects: []models.Project{testProject("p1", "Acme Launch")}}
	scheduler := newTestScheduler(fetcher, fetcher, source, &config.SyncConfig{Enabled: true, Interval: time.Hour})

	summary, err := scheduler.TriggerSync(context.Background())
	if err != nil {
		t.Fatalf("TriggerSync failed: %v", err)
	}
	if len(summary.Results) != 1 {
		t.Errorf("Results = %d, want 1", len(summary.Results))
	}

	status := scheduler.Status()
	if status.Running {
		t.Error("Status reports running after completion")
	}
	if status.LastRunAt == nil {
		t.Error("LastRunAt not recorded")
	}
	if status.LastRun == nil || status.LastRun.RunID != summary.RunID {
		t.Errorf("LastRun = %+v, want the completed summary", status.LastRun)
	}
	if status.LastError != "" {
		t.Errorf("LastError = %q, want empty", status.LastError)
	}
}

func TestScheduler_RejectsOverlappingRuns(t *testing.T) {
	t.Parallel()

	fetcher := newBlockingFetcher()
	source := &mockSource{projects: []models.Project{testProject("p1", "Acme Launch")}}
	scheduler := newTestScheduler(fetcher, fetcher, source, &config.SyncConfig{Enabled: true, Interval: time.Hour})

	done := make(chan error, 1)
	go func() {
		_, err := scheduler.TriggerSync(context.Background())
		done <- err
	}()

	select {
	case <-fetcher.started:
	case <-time.After(5 * time.Second):
		t.Fatal("First run never started")
	}

	if _, err := scheduler.TriggerSync(context.Background()); !errors.Is(err, ErrSyncInProgress) {
		t.Errorf("Expected ErrSyncInProgress for the overlapping trigger, got %v", err)
	}
	if !scheduler.Status().Running {
		t.Error("Status does not report the in-flight run")
	}

	close(fetcher.release)
	if err := <-done; err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// The lock is free again once the run completes.
	if _, err := scheduler.TriggerSync(context.Background()); err != nil {
		t.Errorf("Follow-up trigger failed: %v", err)
	}
}

func TestScheduler_RecordsRunError(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	fetcher.hasCredential = false
	source := &mockSource{}
	scheduler := newTestScheduler(fetcher, fetcher, source, &config.SyncConfig{Enabled: true, Interval: time.Hour})

	if _, err := scheduler.TriggerSync(context.Background()); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("Expected ErrMissingCredential, got %v", err)
	}

	status := scheduler.Status()
	if status.LastError == "" {
		t.Error("LastError not recorded for a failed run")
	}
	if status.LastRun != nil {
		t.Errorf("LastRun = %+v, want nil after an aborted run", status.LastRun)
	}
}

func TestScheduler_ServeDisabled(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	source := &mockSource{}
	scheduler := newTestScheduler(fetcher, fetcher, source, &config.SyncConfig{Enabled: false, Interval: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := scheduler.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v, want context.DeadlineExceeded", err)
	}
	if source.queried {
		t.Error("Disabled scheduler queried the project source")
	}
}

func TestScheduler_ServeRunsOnInterval(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	source := &mockSource{projects: []models.Project{testProject("p1", "Acme Launch")}}
	scheduler := newTestScheduler(fetcher, fetcher, source, &config.SyncConfig{Enabled: true, Interval: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() { serveDone <- scheduler.Serve(ctx) }()

	deadline := time.After(5 * time.Second)
	for scheduler.Status().LastRunAt == nil {
		select {
		case <-deadline:
			t.Fatal("No scheduled run happened")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-serveDone; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve returned %v, want context.Canceled", err)
	}
}

func TestScheduler_DefaultInterval(t *testing.T) {
	t.Parallel()

	fetcher := newMockFetcher()
	scheduler := newTestScheduler(fetcher, fetcher, &mockSource{}, &config.SyncConfig{Enabled: true})
	if scheduler.interval != 6*time.Hour {
		t.Errorf("Default interval = %v, want 6h", scheduler.interval)
	}
}
