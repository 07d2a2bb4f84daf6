// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

// Command server runs the MetricasLisboa sync service: the periodic
// ad-metrics orchestrator, the project API, and the supervision tree that
// keeps both alive.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/api"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/config"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/database"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/events"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/metaads"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/supervisor"
	syncpkg "github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet; the default logger reports this.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("scheduler_enabled", cfg.Sync.Enabled).
		Dur("sync_interval", cfg.Sync.Interval).
		Ints("lookback_days", cfg.Sync.LookbackDays).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	metaClient := metaads.NewClient(&cfg.MetaAds)
	if !metaClient.HasCredential() {
		// Not fatal: the read API works without it, sync runs refuse to start.
		logging.Warn().Msg("Meta Ads access token not configured; sync runs will be rejected")
	}

	bus := events.NewBus()
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	// Sync pipeline: fetcher -> runner -> status writer, orchestrated with
	// fixed pacing and published to the event bus.
	fetcher := syncpkg.NewMetaFetcher(metaClient)
	pacer := syncpkg.NewFixedPacer(cfg.Sync.WindowDelay, cfg.Sync.ProjectDelay)
	runner := syncpkg.NewProjectRunner(fetcher, pacer)
	writer := syncpkg.NewStatusWriter(db, nil)
	orchestrator := syncpkg.NewOrchestrator(db, fetcher, runner, writer, pacer, bus, cfg.Sync.LookbackDays, nil)
	scheduler := syncpkg.NewScheduler(orchestrator, &cfg.Sync)

	router := api.NewRouter(api.NewHandler(db, scheduler), &cfg.Server)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddSyncService(scheduler)
	tree.AddSyncService(events.NewLogBridge(bus))
	tree.AddAPIService(supervisor.NewHTTPService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	logging.Info().Msg("Shutdown complete")
}
