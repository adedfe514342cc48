// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package plex

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cadence/internal/logging"
	"github.com/tomtom215/cadence/internal/rating"
)

// Library is a section-bound view of a music library with a circuit breaker
// around every call. When the Plex server dies mid-run the breaker opens and
// the remaining albums fail fast as skips instead of each waiting out the
// HTTP timeout.
type Library struct {
	client     *Client
	sectionKey string
	cb         *gobreaker.CircuitBreaker[any]
}

// NewLibrary binds a client to a library section and wraps it in a circuit
// breaker.
//
// Breaker configuration:
//   - Max 3 requests in half-open state
//   - 1 minute measurement window in closed state
//   - 2 minute timeout before attempting recovery
//   - Opens after a 60% failure rate with minimum 10 requests
func NewLibrary(client *Client, sectionKey string) *Library {
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "plex-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
		},
	})

	return &Library{
		client:     client,
		sectionKey: sectionKey,
		cb:         cb,
	}
}

// ListAlbums retrieves all albums in the bound section.
func (l *Library) ListAlbums(ctx context.Context) ([]Album, error) {
	result, err := l.cb.Execute(func() (any, error) {
		return l.client.ListAlbums(ctx, l.sectionKey)
	})
	if err != nil {
		return nil, err
	}
	return result.([]Album), nil
}

// trackListing bundles the two values ListTracks produces through the
// breaker's single-result Execute.
type trackListing struct {
	samples []rating.TrackSample
	total   int
}

// ListTracks retrieves an album's track samples and total track count.
func (l *Library) ListTracks(ctx context.Context, albumRatingKey string) ([]rating.TrackSample, int, error) {
	result, err := l.cb.Execute(func() (any, error) {
		samples, total, err := l.client.ListTracks(ctx, albumRatingKey)
		if err != nil {
			return nil, err
		}
		return trackListing{samples: samples, total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	listing := result.(trackListing)
	return listing.samples, listing.total, nil
}

// SetRating writes an album rating.
func (l *Library) SetRating(ctx context.Context, albumRatingKey string, value int) error {
	_, err := l.cb.Execute(func() (any, error) {
		return nil, l.client.SetRating(ctx, albumRatingKey, value)
	})
	return err
}

// ClearRating removes an album rating.
func (l *Library) ClearRating(ctx context.Context, albumRatingKey string) error {
	_, err := l.cb.Execute(func() (any, error) {
		return nil, l.client.ClearRating(ctx, albumRatingKey)
	})
	return err
}
