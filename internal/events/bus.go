// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// Bus is an in-process pub/sub for sync lifecycle events. Publishing never
// blocks the orchestrator: the channel is buffered and a full buffer drops
// on Close rather than back-pressuring the run loop.
type Bus struct {
	pubsub *gochannel.GoChannel

	mu     sync.RWMutex
	closed bool
}

// NewBus creates the event bus. Watermill's internal logging is routed
// through the service logger.
func NewBus() *Bus {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logger)

	return &Bus{pubsub: pubsub}
}

// PublishRunCompleted wraps the summary in an event envelope and publishes
// it. Satisfies the orchestrator's publisher contract.
func (b *Bus) PublishRunCompleted(summary *models.RunSummary) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	b.mu.RUnlock()

	event := NewRunCompletedEvent(summary)
	data, err := Serialize(event)
	if err != nil {
		return fmt.Errorf("serializing run event: %w", err)
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("run_id", summary.RunID)

	if err := b.pubsub.Publish(TopicRunCompleted, msg); err != nil {
		return fmt.Errorf("publishing run event: %w", err)
	}

	logging.Debug().
		Str("run_id", summary.RunID).
		Str("event_id", event.EventID).
		Msg("Run completion event published")

	return nil
}

// SubscribeRunCompleted returns a channel of run completion messages.
// Messages must be Acked or Nacked by the consumer.
func (b *Bus) SubscribeRunCompleted(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, TopicRunCompleted)
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	return b.pubsub.Close()
}
