// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"context"
	"time"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/metaads"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/metrics"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// WindowFetcher performs one per-project, per-window sync attempt and
// reports the outcome as a boolean. Implementations must not propagate
// failures: a non-success response, a malformed body, a network error, and a
// timeout all collapse into a failed outcome. The orchestrator's job is
// continuation, not diagnosis; diagnostic detail belongs to the sync
// operation's own logs.
type WindowFetcher interface {
	FetchWindow(ctx context.Context, project models.Project, window models.SyncWindow) models.WindowOutcome
}

// CredentialSource reports whether the upstream credential is configured.
// Checked by the orchestrator before any project is touched.
type CredentialSource interface {
	HasCredential() bool
}

// MetaFetcher adapts the metaads client to the WindowFetcher contract.
type MetaFetcher struct {
	client *metaads.Client
}

// NewMetaFetcher creates the production fetcher.
func NewMetaFetcher(client *metaads.Client) *MetaFetcher {
	return &MetaFetcher{client: client}
}

// HasCredential delegates to the underlying client.
func (f *MetaFetcher) HasCredential() bool {
	return f.client.HasCredential()
}

// FetchWindow invokes the sync operation for one (project, window) pair.
// Every non-success signal, whatever its origin, yields Succeeded=false.
func (f *MetaFetcher) FetchWindow(ctx context.Context, project models.Project, window models.SyncWindow) models.WindowOutcome {
	start := time.Now()

	accountID := ""
	if project.MetaAccountID != nil {
		accountID = *project.MetaAccountID
	}

	resp, err := f.client.SyncAdInsights(ctx, metaads.SyncRequest{
		ProjectID:         project.ID,
		ExternalAccountID: accountID,
		TimeRange: metaads.TimeRange{
			Since: window.SinceDate(),
			Until: window.UntilDate(),
		},
	})

	succeeded := err == nil && resp.Success
	metrics.ObserveWindowFetch(window.Key, start, succeeded)

	if !succeeded {
		event := logging.Ctx(ctx).Warn().
			Str("project_id", project.ID).
			Str("window", window.Key)
		if err != nil {
			event = event.Err(err)
		} else if resp.Error != "" {
			event = event.Str("upstream_error", resp.Error)
		}
		event.Msg("Window fetch failed")
	} else {
		logging.Ctx(ctx).Debug().
			Str("project_id", project.ID).
			Str("window", window.Key).
			Dur("duration", time.Since(start)).
			Msg("Window fetch succeeded")
	}

	return models.WindowOutcome{WindowKey: window.Key, Succeeded: succeeded}
}
