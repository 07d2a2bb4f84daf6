// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONOutput(t *testing.T) {
	// NOT parallel - mutates the global logger

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf, Timestamp: true})
	defer Init(DefaultConfig())

	Info().Str("key", "value").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("Expected structured field in output, got: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("Expected message in output, got: %s", out)
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	// NOT parallel - mutates the global logger

	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("should be filtered")
	Info().Msg("should be filtered")
	Warn().Msg("should appear")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("Expected debug/info records to be filtered, got: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("Expected warn record in output, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"WARN", zerolog.WarnLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSetLogger_ReplacesGlobal(t *testing.T) {
	// NOT parallel - mutates the global logger

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	Info().Str("key", "value").Msg("captured")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("Expected field in captured output, got: %s", out)
	}
	if !strings.Contains(out, `"message":"captured"`) {
		t.Errorf("Expected message in captured output, got: %s", out)
	}
}

func TestWithComponent_TagsEveryRecord(t *testing.T) {
	// NOT parallel - mutates the global logger

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	l := WithComponent("scheduler")
	l.Info().Msg("first")
	l.Warn().Msg("second")

	out := buf.String()
	if got := strings.Count(out, `"component":"scheduler"`); got != 2 {
		t.Errorf("Expected component field on both records, got %d in: %s", got, out)
	}
}

func TestCtx_AddsRunAndRequestIDs(t *testing.T) {
	// NOT parallel - mutates the global logger

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	ctx := ContextWithRunID(context.Background(), "run12345")
	ctx = ContextWithRequestID(ctx, "req-uuid")

	Ctx(ctx).Info().Msg("correlated")

	out := buf.String()
	if !strings.Contains(out, `"run_id":"run12345"`) {
		t.Errorf("Expected run_id in output, got: %s", out)
	}
	if !strings.Contains(out, `"request_id":"req-uuid"`) {
		t.Errorf("Expected request_id in output, got: %s", out)
	}
}

func TestCtx_EmptyContext(t *testing.T) {
	// NOT parallel - mutates the global logger

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Ctx(context.Background()).Info().Msg("plain")

	out := buf.String()
	if strings.Contains(out, "run_id") || strings.Contains(out, "request_id") {
		t.Errorf("Expected no correlation fields on empty context, got: %s", out)
	}
}

func TestRunIDFromContext_Missing(t *testing.T) {
	t.Parallel()

	if got := RunIDFromContext(context.Background()); got != "" {
		t.Errorf("Expected empty run ID, got %q", got)
	}
}

func TestGenerateRunID_Length(t *testing.T) {
	t.Parallel()

	id := GenerateRunID()
	if len(id) != 8 {
		t.Errorf("Expected 8-character run ID, got %q (%d chars)", id, len(id))
	}
}

func TestSlogAdapter_WritesThroughZerolog(t *testing.T) {
	// NOT parallel - mutates the global logger

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	slogger := NewSlogLogger()
	slogger.Info("supervisor event", "service", "sync-scheduler", "attempts", int64(2))

	out := buf.String()
	if !strings.Contains(out, `"service":"sync-scheduler"`) {
		t.Errorf("Expected slog attr in zerolog output, got: %s", out)
	}
	if !strings.Contains(out, `"attempts":2`) {
		t.Errorf("Expected int attr in zerolog output, got: %s", out)
	}
	if !strings.Contains(out, "supervisor event") {
		t.Errorf("Expected message in output, got: %s", out)
	}
}

func TestSlogAdapter_LevelMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
