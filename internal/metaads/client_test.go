// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

package metaads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/config"
)

func newTestClient(endpoint string) *Client {
	return NewClient(&config.MetaAdsConfig{
		Endpoint:          endpoint,
		AccessToken:       "test-token",
		FetchTimeout:      2 * time.Second,
		RequestsPerSecond: 1000, // effectively unthrottled in tests
	})
}

func TestSyncAdInsights_Success(t *testing.T) {
	t.Parallel()

	var captured SyncRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Expected bearer token header, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("Decoding request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.SyncAdInsights(context.Background(), SyncRequest{
		ProjectID:         "p1",
		ExternalAccountID: "act_123",
		TimeRange:         TimeRange{Since: "2026-08-24", Until: "2026-08-31"},
	})
	if err != nil {
		t.Fatalf("SyncAdInsights failed: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success response")
	}

	if captured.ProjectID != "p1" || captured.ExternalAccountID != "act_123" {
		t.Errorf("Request body not forwarded: %+v", captured)
	}
	if captured.TimeRange.Since != "2026-08-24" || captured.TimeRange.Until != "2026-08-31" {
		t.Errorf("Time range not forwarded: %+v", captured.TimeRange)
	}
}

func TestSyncAdInsights_UpstreamReportsFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "account rate limited"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.SyncAdInsights(context.Background(), SyncRequest{})
	if err != nil {
		t.Fatalf("Expected decoded response without transport error, got: %v", err)
	}
	if resp.Success {
		t.Error("Expected Success=false")
	}
	if resp.Error != "account rate limited" {
		t.Errorf("Expected error detail, got %q", resp.Error)
	}
}

func TestSyncAdInsights_Non2xxStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.SyncAdInsights(context.Background(), SyncRequest{}); err == nil {
		t.Error("Expected error for 502 response")
	}
}

func TestSyncAdInsights_MalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.SyncAdInsights(context.Background(), SyncRequest{}); err == nil {
		t.Error("Expected error for malformed response body")
	}
}

func TestSyncAdInsights_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient(&config.MetaAdsConfig{
		Endpoint:          server.URL,
		AccessToken:       "test-token",
		FetchTimeout:      50 * time.Millisecond,
		RequestsPerSecond: 1000,
	})

	if _, err := client.SyncAdInsights(context.Background(), SyncRequest{}); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestSyncAdInsights_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.SyncAdInsights(ctx, SyncRequest{}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestSyncAdInsights_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	// Five consecutive transport-level failures trip the breaker.
	for i := 0; i < 5; i++ {
		if _, err := client.SyncAdInsights(ctx, SyncRequest{}); err == nil {
			t.Fatalf("Attempt %d: expected error", i)
		}
	}

	hitsBefore := hits
	if _, err := client.SyncAdInsights(ctx, SyncRequest{}); err == nil {
		t.Error("Expected open-circuit error")
	}
	if hits != hitsBefore {
		t.Errorf("Expected open circuit to reject without calling upstream, hits %d -> %d", hitsBefore, hits)
	}
}

func TestHasCredential(t *testing.T) {
	t.Parallel()

	with := NewClient(&config.MetaAdsConfig{AccessToken: "tok", FetchTimeout: time.Second, RequestsPerSecond: 1})
	without := NewClient(&config.MetaAdsConfig{FetchTimeout: time.Second, RequestsPerSecond: 1})

	if !with.HasCredential() {
		t.Error("Expected HasCredential=true with token")
	}
	if without.HasCredential() {
		t.Error("Expected HasCredential=false without token")
	}
}
