// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package api

import (
	"errors"
	"net/http"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
	syncpkg "github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/sync"
)

// SyncRun triggers a sync run and blocks until it finishes. The dashboard
// invokes this from its manual "sync now" action and renders the per-project
// results directly from the response.
//
// POST /api/v1/sync/run
func (h *Handler) SyncRun(w http.ResponseWriter, r *http.Request) {
	logging.Ctx(r.Context()).Info().Msg("Manual sync run requested")

	summary, err := h.scheduler.TriggerSync(r.Context())

	switch {
	case errors.Is(err, syncpkg.ErrSyncInProgress):
		writeRaw(w, http.StatusConflict, models.SyncRunResponse{
			Success: false,
			Results: []models.ProjectRunResult{},
			Error:   err.Error(),
		})
	case errors.Is(err, syncpkg.ErrMissingCredential):
		writeRaw(w, http.StatusPreconditionFailed, models.SyncRunResponse{
			Success: false,
			Results: []models.ProjectRunResult{},
			Error:   err.Error(),
		})
	case err != nil:
		// Cancelled mid-run or the project read failed. The summary, when
		// present, carries whatever completed before the abort.
		resp := models.SyncRunResponse{
			Success: false,
			Results: []models.ProjectRunResult{},
			Error:   err.Error(),
		}
		if summary != nil && summary.Results != nil {
			resp.Results = summary.Results
		}
		writeRaw(w, http.StatusInternalServerError, resp)
	default:
		writeRaw(w, http.StatusOK, models.SyncRunResponse{
			Success: true,
			Results: summary.Results,
		})
	}
}

// SyncStatus reports the scheduler state and the last run's summary.
//
// GET /api/v1/sync/status
func (h *Handler) SyncStatus(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, h.scheduler.Status())
}
