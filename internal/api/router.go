// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

// Package api provides the HTTP surface of the sync service using the Chi
// router: project management, manual sync triggers, sync status, health
// probes, and Prometheus metrics.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/config"
)

// Router assembles the middleware stack and routes around a Handler.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter creates a router for the given handler and server settings.
func NewRouter(handler *Handler, cfg *config.ServerConfig) *Router {
	return &Router{
		handler:    handler,
		middleware: NewMiddleware(cfg),
	}
}

// Setup wires all routes and returns the root http.Handler.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global stack, applied to every route in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.middleware.CORS())

	// Health probes are unmetered so orchestration platforms can poll
	// freely.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.middleware.RateLimit())
		r.Use(PrometheusMetrics)

		r.Route("/sync", func(r chi.Router) {
			r.Post("/run", rt.handler.SyncRun)
			r.Get("/status", rt.handler.SyncStatus)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", rt.handler.ProjectsList)
			r.Post("/", rt.handler.ProjectCreate)
			r.Get("/{id}", rt.handler.ProjectGet)
			r.Get("/{id}/sync-logs", rt.handler.ProjectSyncLogs)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
