// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package plex

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/cadence/internal/logging"
)

// Client handles communication with the Plex Media Server API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Plex API client.
//
// Parameters:
//   - baseURL: Plex Media Server URL (e.g., "http://localhost:32400")
//   - token: X-Plex-Token for authentication
//
// Returns an initialized Client with a 30-second HTTP timeout.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping checks connectivity and authentication to the Plex server.
//
// Endpoint: GET /identity
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSONRequest(ctx, "/identity", nil)
}

// doRequestWithRateLimit executes an HTTP request with automatic retry on
// rate limiting (HTTP 429).
//
// Retry behavior:
//   - Max 5 retry attempts
//   - Exponential backoff: 1s, 2s, 4s, 8s, 16s
//   - Respects the Retry-After header (RFC 6585) if present
//   - Only retries on HTTP 429
//
// The caller must close the response body on success.
func (c *Client) doRequestWithRateLimit(req *http.Request) (*http.Response, error) {
	const maxRetries = 5
	baseDelay := 1 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		resp.Body.Close()

		if attempt == maxRetries {
			return nil, fmt.Errorf("rate limit exceeded after %d retries", maxRetries)
		}

		retryDelay := baseDelay * (1 << attempt)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				retryDelay = seconds
			}
		}

		logging.Warn().Dur("retry_delay", retryDelay).Int("attempt", attempt+1).Int("max_retries", maxRetries).Msg("Plex API rate limited (HTTP 429), retrying")

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("unreachable code: retry loop should return or error")
}
