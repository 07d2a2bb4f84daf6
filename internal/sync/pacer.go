// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package sync

import (
	"context"
	"time"
)

// Pacer spaces the orchestrator's calls to stay under the upstream rate
// budget. Both delays are fixed constants rather than adaptive backoff:
// fixed spacing keeps total run time predictable and bounded without parsing
// rate-limit response headers.
type Pacer interface {
	// BetweenWindows pauses after a window fetch before the next window of
	// the same project. Returns early with the context error if the run is
	// cancelled mid-wait.
	BetweenWindows(ctx context.Context) error

	// BetweenProjects pauses after a project's full run before the next
	// project.
	BetweenProjects(ctx context.Context) error
}

// FixedPacer implements Pacer with constant delays.
type FixedPacer struct {
	windowDelay  time.Duration
	projectDelay time.Duration
}

// NewFixedPacer creates a pacer with the given constant delays.
func NewFixedPacer(windowDelay, projectDelay time.Duration) *FixedPacer {
	return &FixedPacer{windowDelay: windowDelay, projectDelay: projectDelay}
}

// BetweenWindows waits the inter-window delay.
func (p *FixedPacer) BetweenWindows(ctx context.Context) error {
	return sleepContext(ctx, p.windowDelay)
}

// BetweenProjects waits the inter-project delay.
func (p *FixedPacer) BetweenProjects(ctx context.Context) error {
	return sleepContext(ctx, p.projectDelay)
}

// NopPacer is a zero-delay Pacer for tests and manual no-wait runs.
type NopPacer struct{}

// BetweenWindows returns immediately.
func (NopPacer) BetweenWindows(ctx context.Context) error { return ctx.Err() }

// BetweenProjects returns immediately.
func (NopPacer) BetweenProjects(ctx context.Context) error { return ctx.Err() }

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
