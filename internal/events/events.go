// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

// Package events carries sync lifecycle notifications over an in-process
// Watermill pub/sub. Subscribers (the dashboard cache warmer, future alert
// hooks) observe completed runs without coupling to the orchestrator.
package events

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/models"
)

// SchemaVersion is the current event schema version. Increment on breaking
// changes to RunCompletedEvent.
const SchemaVersion = 1

// TopicRunCompleted receives one event per finished sync run.
const TopicRunCompleted = "sync.run_completed"

// RunCompletedEvent is the envelope published after every completed run.
type RunCompletedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	OccurredAt    time.Time `json:"occurred_at"`

	Run *models.RunSummary `json:"run"`
}

// NewRunCompletedEvent wraps a run summary in the current envelope.
func NewRunCompletedEvent(summary *models.RunSummary) *RunCompletedEvent {
	return &RunCompletedEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		OccurredAt:    time.Now().UTC(),
		Run:           summary,
	}
}

// Serialize encodes the event for the wire.
func Serialize(event *RunCompletedEvent) ([]byte, error) {
	return json.Marshal(event)
}

// Deserialize decodes a wire payload back into an event.
func Deserialize(data []byte) (*RunCompletedEvent, error) {
	var event RunCompletedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
