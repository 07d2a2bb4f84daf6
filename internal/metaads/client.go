// MetricasLisboa - Marketing Analytics & Ad-Metrics Sync Service
// Copyright 2026 Gabriel Henrique (gabrielhenriquelasaro7-coder)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001

// Package metaads provides the HTTP client for the hosted meta-ads-sync
// operation. Each call syncs one (project, window) pair of ad insights and
// reports a structured success flag.
//
// The client layers three protections in front of the upstream:
//
//   - a bounded per-request timeout, kept below any platform request cap so
//     every call observes a definite outcome
//   - a circuit breaker, so a dead upstream fails fast instead of burning the
//     full timeout on every window
//   - a token-bucket rate limit as a hard request-rate floor underneath the
//     orchestrator's pacing delays
package metaads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/config"
	"github.com/gabrielhenriquelasaro7-coder/metricaslisboa-sub001/internal/logging"
)

// maxResponseBytes caps response reads. The sync operation returns a small
// JSON document; anything larger is malformed.
const maxResponseBytes = 1 << 20

// TimeRange carries the window boundaries on the wire as calendar dates.
type TimeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

// SyncRequest is the payload for one per-window sync invocation.
type SyncRequest struct {
	ProjectID         string    `json:"project_id"`
	ExternalAccountID string    `json:"external_account_id"`
	TimeRange         TimeRange `json:"time_range"`
}

// SyncResponse is the expected result shape. Any response without a true
// Success field is treated as failure by callers; extra fields are ignored.
type SyncResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Client calls the hosted meta-ads-sync operation.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	cb          *gobreaker.CircuitBreaker[*SyncResponse]
}

// NewClient creates a client from configuration. The per-request timeout is
// enforced by the underlying http.Client in addition to the caller's context.
func NewClient(cfg *config.MetaAdsConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	cb := gobreaker.NewCircuitBreaker[*SyncResponse](gobreaker.Settings{
		Name:        "meta-ads-sync",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state change")
		},
	})

	return &Client{
		endpoint:    cfg.Endpoint,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.FetchTimeout},
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		cb:          cb,
	}
}

// HasCredential reports whether an access token is configured. The
// orchestrator checks this before touching any project.
func (c *Client) HasCredential() bool {
	return c.accessToken != ""
}

// SyncAdInsights invokes the sync operation for one (project, window) pair.
// Returns an error for transport failures, non-2xx responses, and malformed
// bodies; a decoded response with Success=false is returned without error so
// the caller can distinguish "upstream said no" from "call never completed".
func (c *Client) SyncAdInsights(ctx context.Context, req SyncRequest) (*SyncResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	return c.cb.Execute(func() (*SyncResponse, error) {
		return c.doSync(ctx, req)
	})
}

func (c *Client) doSync(ctx context.Context, req SyncRequest) (*SyncResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding sync request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building sync request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling sync operation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading sync response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sync operation returned status %d", resp.StatusCode)
	}

	var syncResp SyncResponse
	if err := json.Unmarshal(raw, &syncResp); err != nil {
		return nil, fmt.Errorf("decoding sync response: %w", err)
	}

	return &syncResp, nil
}
