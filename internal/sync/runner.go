// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"context"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// ProjectRunner drives all windows for one project through the fetcher,
// in catalog order, accumulating outcomes. It never short-circuits on a
// failed window: partial success within a project is an expected outcome,
// not an error state.
type ProjectRunner struct {
	fetcher WindowFetcher
	pacer   Pacer
}

// NewProjectRunner creates a runner with the given fetcher and pacing.
func NewProjectRunner(fetcher WindowFetcher, pacer Pacer) *ProjectRunner {
	return &ProjectRunner{fetcher: fetcher, pacer: pacer}
}

// Run attempts every window for one project. The returned error is non-nil
// only when the run context is cancelled mid-project; fetch failures are
// recorded in the result, never returned. On cancellation the partial result
// must not be persisted, which the orchestrator enforces by skipping the
// status write.
func (r *ProjectRunner) Run(ctx context.Context, project models.Project, windows []models.SyncWindow) (models.ProjectRunResult, error) {
	result := models.ProjectRunResult{
		ProjectID:        project.ID,
		ProjectName:      project.Name,
		WindowsSucceeded: []string{},
		WindowsFailed:    []string{},
	}

	for i, window := range windows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Record(r.fetcher.FetchWindow(ctx, project, window))

		// Pace before the next window; nothing follows the last one.
		if i < len(windows)-1 {
			if err := r.pacer.BetweenWindows(ctx); err != nil {
				return result, err
			}
		}
	}

	logging.Ctx(ctx).Info().
		Str("project_id", project.ID).
		Str("project_name", project.Name).
		Int("succeeded", len(result.WindowsSucceeded)).
		Int("failed", len(result.WindowsFailed)).
		Msg("Project windows attempted")

	return result, nil
}
