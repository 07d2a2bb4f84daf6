// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

func TestLogBridge_ConsumesPublishedRuns(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	defer func() { _ = bus.Close() }()

	bridge := NewLogBridge(bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bridge.Serve(ctx) }()

	// gochannel delivers only to subscribers present at publish time; give
	// the bridge a moment to subscribe.
	time.Sleep(50 * time.Millisecond)

	if err := bus.PublishRunCompleted(testSummary()); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	// A consumed (acked) message lets a second publish through immediately.
	if err := bus.PublishRunCompleted(testSummary()); err != nil {
		t.Fatalf("Second publish failed: %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Bridge did not stop after cancellation")
	}
}

func TestLogBridge_DropsEventWithoutSummary(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	defer func() { _ = bus.Close() }()

	bridge := NewLogBridge(bus)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bridge.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)

	// Valid JSON, but no run summary. The bridge must drop it and keep
	// consuming.
	empty := message.NewMessage(watermill.NewUUID(), []byte(`{"schema_version":1}`))
	if err := bus.pubsub.Publish(TopicRunCompleted, empty); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if err := bus.PublishRunCompleted(testSummary()); err != nil {
		t.Fatalf("Publish after empty event failed: %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Bridge did not stop after cancellation")
	}
}

func TestLogBridge_String(t *testing.T) {
	t.Parallel()

	if got := NewLogBridge(NewBus()).String(); got != "run-event-bridge" {
		t.Errorf("String() = %q, want run-event-bridge", got)
	}
}
