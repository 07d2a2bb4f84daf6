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
)

func TestFixedPacer_WaitsTheConfiguredDelay(t *testing.T) {
	t.Parallel()

	pacer := NewFixedPacer(30*time.Millisecond, 50*time.Millisecond)

	start := time.Now()
	if err := pacer.BetweenWindows(context.Background()); err != nil {
		t.Fatalf("BetweenWindows failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("BetweenWindows returned after %v, expected >= 30ms", elapsed)
	}

	start = time.Now()
	if err := pacer.BetweenProjects(context.Background()); err != nil {
		t.Fatalf("BetweenProjects failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("BetweenProjects returned after %v, expected >= 50ms", elapsed)
	}
}

func TestFixedPacer_CancelledMidWait(t *testing.T) {
	t.Parallel()

	pacer := NewFixedPacer(5*time.Second, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := pacer.BetweenWindows(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Cancellation took %v, expected prompt return", elapsed)
	}
}

func TestFixedPacer_ZeroDelay(t *testing.T) {
	t.Parallel()

	pacer := NewFixedPacer(0, 0)
	if err := pacer.BetweenWindows(context.Background()); err != nil {
		t.Errorf("Zero-delay BetweenWindows failed: %v", err)
	}
}

func TestNopPacer(t *testing.T) {
	t.Parallel()

	pacer := NopPacer{}
	if err := pacer.BetweenWindows(context.Background()); err != nil {
		t.Errorf("NopPacer.BetweenWindows failed: %v", err)
	}
	if err := pacer.BetweenProjects(context.Background()); err != nil {
		t.Errorf("NopPacer.BetweenProjects failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pacer.BetweenWindows(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context error from cancelled context, got %v", err)
	}
}
