// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"context"
	"errors"
	stdSync "sync"
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/config"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// ErrSyncInProgress is returned when a run is requested while another run is
// still in flight. Runs never queue or overlap; the caller retries later.
var ErrSyncInProgress = errors.New("a sync run is already in progress")

// Scheduler invokes the orchestrator on a fixed interval and serves manual
// triggers through the same overlap guard. It implements suture.Service.
type Scheduler struct {
	orchestrator *Orchestrator
	interval     time.Duration
	enabled      bool

	runMu stdSync.Mutex // serializes runs; TryLock rejects overlap

	mu          stdSync.RWMutex // protects the fields below
	running     bool
	lastRunAt   time.Time
	lastSummary *models.RunSummary
	lastErr     error
}

// SchedulerStatus is a read-only snapshot for the status endpoint.
type SchedulerStatus struct {
	Enabled   bool               `json:"enabled"`
	Running   bool               `json:"running"`
	LastRunAt *time.Time         `json:"last_run_at,omitempty"`
	LastError string             `json:"last_error,omitempty"`
	LastRun   *models.RunSummary `json:"last_run,omitempty"`
}

// NewScheduler creates the periodic scheduler.
func NewScheduler(orchestrator *Orchestrator, cfg *config.SyncConfig) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Scheduler{
		orchestrator: orchestrator,
		interval:     interval,
		enabled:      cfg.Enabled,
	}
}

// Serve runs the periodic loop until the context is cancelled. The first
// run happens after one full interval, not at startup, so a crash-looping
// service cannot hammer the upstream. Satisfies suture.Service.
func (s *Scheduler) Serve(ctx context.Context) error {
	if !s.enabled {
		logging.Info().Msg("Periodic sync disabled; scheduler idle")
		<-ctx.Done()
		return ctx.Err()
	}

	logging.Info().Dur("interval", s.interval).Msg("Sync scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Sync scheduler stopping")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.TriggerSync(ctx); err != nil {
				if errors.Is(err, ErrSyncInProgress) {
					logging.Warn().Msg("Scheduled sync skipped; previous run still in flight")
					continue
				}
				logging.Error().Err(err).Msg("Scheduled sync run failed")
			}
		}
	}
}

// TriggerSync runs the orchestrator once. Both the ticker and the manual
// HTTP trigger come through here, so a manual run while a scheduled one is
// in flight is rejected with ErrSyncInProgress rather than queued.
func (s *Scheduler) TriggerSync(ctx context.Context) (*models.RunSummary, error) {
	if !s.runMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.runMu.Unlock()

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	summary, err := s.orchestrator.Run(ctx)

	s.mu.Lock()
	s.running = false
	s.lastRunAt = time.Now()
	s.lastErr = err
	if summary != nil {
		s.lastSummary = summary
	}
	s.mu.Unlock()

	return summary, err
}

// Status returns a snapshot of the scheduler state.
func (s *Scheduler) Status() SchedulerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := SchedulerStatus{
		Enabled: s.enabled,
		Running: s.running,
		LastRun: s.lastSummary,
	}
	if !s.lastRunAt.IsZero() {
		t := s.lastRunAt
		status.LastRunAt = &t
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	return status
}
