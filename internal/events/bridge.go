// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package events

import (
	"context"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// LogBridge consumes run completion events and writes one structured log
// line per run with the per-status project counts. It implements
// suture.Service and is the bus's default in-process subscriber.
type LogBridge struct {
	bus *Bus
}

// NewLogBridge creates the bridge for the given bus.
func NewLogBridge(bus *Bus) *LogBridge {
	return &LogBridge{bus: bus}
}

// Serve subscribes and consumes until the context is cancelled or the bus
// closes. Malformed payloads are acked and dropped; redelivery cannot fix
// them.
func (b *LogBridge) Serve(ctx context.Context) error {
	messages, err := b.bus.SubscribeRunCompleted(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return ctx.Err()
			}

			event, err := Deserialize(msg.Payload)
			if err != nil {
				logging.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed run event")
				msg.Ack()
				continue
			}
			if event.Run == nil {
				logging.Warn().Str("message_id", msg.UUID).Msg("Dropping run event without a summary")
				msg.Ack()
				continue
			}

			var success, partial, failed int
			for _, result := range event.Run.Results {
				switch result.Status() {
				case models.SyncStatusSuccess:
					success++
				case models.SyncStatusPartial:
					partial++
				default:
					failed++
				}
			}

			logging.Info().
				Str("run_id", event.Run.RunID).
				Int("projects", len(event.Run.Results)).
				Int("success", success).
				Int("partial", partial).
				Int("error", failed).
				Dur("duration", event.Run.FinishedAt.Sub(event.Run.StartedAt)).
				Msg("Sync run observed")

			msg.Ack()
		}
	}
}

// String identifies the service in supervision logs.
func (b *LogBridge) String() string {
	return "run-event-bridge"
}
