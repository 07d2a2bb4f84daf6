// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/config"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/database"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// maxRequestBytes caps request bodies for write endpoints.
const maxRequestBytes = 64 << 10

// defaultSyncLogLimit bounds the sync-log listing when no limit is given.
const defaultSyncLogLimit = 50

// ProjectsList returns all projects, archived included.
//
// GET /api/v1/projects
func (h *Handler) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.db.ListProjects(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to list projects", err)
		return
	}
	respondData(w, http.StatusOK, projects)
}

// ProjectCreate registers a new project.
//
// POST /api/v1/projects
func (h *Handler) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectCreateRequest

	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body is not valid JSON", err)
		return
	}

	if err := config.Validator().Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	project := &models.Project{
		Name:          req.Name,
		MetaAccountID: req.MetaAccountID,
	}
	if err := h.db.CreateProject(r.Context(), project); err != nil {
		respondError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to create project", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("project_id", project.ID).
		Str("project_name", project.Name).
		Msg("Project created")

	respondData(w, http.StatusCreated, project)
}

// ProjectGet returns one project by ID.
//
// GET /api/v1/projects/{id}
func (h *Handler) ProjectGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.db.GetProject(r.Context(), id)
	if errors.Is(err, database.ErrProjectNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Project not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to load project", err)
		return
	}
	respondData(w, http.StatusOK, project)
}

// ProjectSyncLogs returns a project's sync history, newest first.
//
// GET /api/v1/projects/{id}/sync-logs?limit=50
func (h *Handler) ProjectSyncLogs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.db.GetProject(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Project not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to load project", err)
		return
	}

	limit := getIntParam(r, "limit", defaultSyncLogLimit)
	if limit < 1 || limit > 500 {
		limit = defaultSyncLogLimit
	}

	entries, err := h.db.ListSyncLogEntries(r.Context(), id, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to list sync logs", err)
		return
	}
	respondData(w, http.StatusOK, entries)
}
