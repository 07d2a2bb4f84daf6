// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/metrics"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// ErrMissingCredential is returned when no upstream access token is
// configured. The orchestrator refuses to start a run rather than attempting
// fetches that can only fail.
var ErrMissingCredential = errors.New("meta ads access token is not configured")

// ProjectSource reads the sync-eligible projects. Implemented by
// *database.DB.
type ProjectSource interface {
	ListSyncEligibleProjects(ctx context.Context) ([]models.Project, error)
}

// RunPublisher receives the summary of each completed run. Optional.
type RunPublisher interface {
	PublishRunCompleted(summary *models.RunSummary) error
}

// Orchestrator executes one full sync pass per invocation: read eligible
// projects, drive each through the runner and status writer, pace between
// projects, and return the run summary.
//
// States per invocation: Start -> Aborted on a precondition failure (missing
// credential or a failed project read; terminal, nothing written), otherwise
// Start -> Running -> Completed once every eligible project was processed.
// A project's total failure never stops the loop; no project's sync can
// block or poison another's.
type Orchestrator struct {
	source       ProjectSource
	creds        CredentialSource
	runner       *ProjectRunner
	writer       *StatusWriter
	pacer        Pacer
	publisher    RunPublisher
	lookbackDays []int
	now          func() time.Time
}

// NewOrchestrator wires the run pipeline. publisher may be nil. The clock is
// injected so window boundaries are reproducible in tests.
func NewOrchestrator(
	source ProjectSource,
	creds CredentialSource,
	runner *ProjectRunner,
	writer *StatusWriter,
	pacer Pacer,
	publisher RunPublisher,
	lookbackDays []int,
	now func() time.Time,
) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		source:       source,
		creds:        creds,
		runner:       runner,
		writer:       writer,
		pacer:        pacer,
		publisher:    publisher,
		lookbackDays: lookbackDays,
		now:          now,
	}
}

// Run performs one orchestrator pass. Returns an error only for the fatal
// preconditions (missing credential, project read failure) or when the run
// context is cancelled mid-pass; per-window and per-project failures are
// reported through the summary, not as errors.
func (o *Orchestrator) Run(ctx context.Context) (*models.RunSummary, error) {
	if !o.creds.HasCredential() {
		metrics.SyncRunsTotal.WithLabelValues("aborted").Inc()
		return nil, ErrMissingCredential
	}

	runID := logging.GenerateRunID()
	ctx = logging.ContextWithRunID(ctx, runID)

	startedAt := o.now()
	windows := WindowCatalog(startedAt, o.lookbackDays)

	projects, err := o.source.ListSyncEligibleProjects(ctx)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("aborted").Inc()
		return nil, fmt.Errorf("reading eligible projects: %w", err)
	}

	logging.Ctx(ctx).Info().
		Int("projects", len(projects)).
		Int("windows", len(windows)).
		Msg("Sync run started")

	summary := &models.RunSummary{
		RunID:     runID,
		StartedAt: startedAt,
		Results:   []models.ProjectRunResult{},
	}

	for i, project := range projects {
		result, runErr := o.runner.Run(ctx, project, windows)
		if runErr != nil {
			// Cancelled mid-project: stop without writing the in-flight
			// project's status, leaving its previous sync state intact.
			metrics.SyncRunsTotal.WithLabelValues("aborted").Inc()
			return summary, fmt.Errorf("run cancelled at project %s: %w", project.ID, runErr)
		}

		status, writeErr := o.writer.Finalize(ctx, result)
		if writeErr != nil {
			// A failed status write for one project must not block the
			// remaining projects.
			logging.Ctx(ctx).Error().Err(writeErr).
				Str("project_id", project.ID).
				Msg("Failed to persist project sync status")
		} else {
			logging.Ctx(ctx).Info().
				Str("project_id", project.ID).
				Str("status", string(status)).
				Msg("Project sync finalized")
		}

		summary.Results = append(summary.Results, result)

		if i < len(projects)-1 {
			if err := o.pacer.BetweenProjects(ctx); err != nil {
				metrics.SyncRunsTotal.WithLabelValues("aborted").Inc()
				return summary, fmt.Errorf("run cancelled between projects: %w", err)
			}
		}
	}

	summary.FinishedAt = o.now()
	metrics.SyncRunsTotal.WithLabelValues("completed").Inc()
	metrics.SyncRunDuration.Observe(summary.FinishedAt.Sub(startedAt).Seconds())

	if o.publisher != nil {
		if err := o.publisher.PublishRunCompleted(summary); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish run summary")
		}
	}

	logging.Ctx(ctx).Info().
		Int("projects", len(summary.Results)).
		Dur("duration", summary.FinishedAt.Sub(startedAt)).
		Msg("Sync run completed")

	return summary, nil
}
