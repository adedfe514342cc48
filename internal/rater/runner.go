// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package rater

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cadence/internal/plex"
	"github.com/tomtom215/cadence/internal/rating"
)

// Library is the media-library collaborator the runner drives. Implemented
// by plex.Library; faked in tests.
type Library interface {
	// ListAlbums enumerates the albums of the bound music section.
	ListAlbums(ctx context.Context) ([]plex.Album, error)

	// ListTracks returns an album's per-track rating samples plus the
	// album's total track count.
	ListTracks(ctx context.Context, albumRatingKey string) ([]rating.TrackSample, int, error)

	// SetRating writes an album rating on the Plex 1-10 scale.
	SetRating(ctx context.Context, albumRatingKey string, value int) error

	// ClearRating removes a stored album rating.
	ClearRating(ctx context.Context, albumRatingKey string) error
}

// Stats summarizes one rating run.
type Stats struct {
	// Evaluated counts albums whose stored rating needed a change.
	Evaluated int

	// Updated counts albums whose rating write succeeded.
	Updated int

	// Skipped counts albums left untouched: no action needed, insufficient
	// data without the unrate opt-in, or a per-album fetch failure.
	Skipped int
}

// Runner processes a music library album by album: fetch track samples,
// derive a rating, decide, and apply. Albums are strictly sequential and
// independent; nothing is shared between them and no state survives the run.
type Runner struct {
	lib    Library
	engine *rating.Engine
	params rating.Params
	dryRun bool
	log    zerolog.Logger
}

// NewRunner creates a runner over the given library.
func NewRunner(lib Library, params rating.Params, dryRun bool, log zerolog.Logger) *Runner {
	return &Runner{
		lib:    lib,
		engine: rating.NewEngine(params, log),
		params: params,
		dryRun: dryRun,
		log:    log,
	}
}

// Run processes every album in the library once and returns the run totals.
// Album enumeration failure aborts the whole run; per-album failures are
// logged, counted as skips or missed updates, and the run continues.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	albums, err := r.lib.ListAlbums(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list albums: %w", err)
	}

	r.log.Info().Int("albums", len(albums)).Bool("dry_run", r.dryRun).Msg("Starting album rating run")

	var stats Stats
	for _, album := range albums {
		r.processAlbum(ctx, album, &stats)
	}

	r.log.Info().
		Int("evaluated", stats.Evaluated).
		Int("updated", stats.Updated).
		Int("skipped", stats.Skipped).
		Msg("Album auto-rating complete")

	return stats, nil
}

func (r *Runner) processAlbum(ctx context.Context, album plex.Album, stats *Stats) {
	samples, total, err := r.lib.ListTracks(ctx, album.RatingKey)
	if err != nil {
		r.log.Warn().Err(err).Str("artist", album.Artist).Str("album", album.Title).Msg("Failed to retrieve album tracks, skipping")
		stats.Skipped++
		return
	}

	res := r.engine.Compute(samples, total)
	dec := rating.Decide(res, album.UserRating, r.params)

	if dec.Action == rating.ActionNone {
		r.log.Debug().Str("artist", album.Artist).Str("album", album.Title).Int("rated", res.RatedCount).Int("total", total).Msg("No rating change needed")
		stats.Skipped++
		return
	}

	stats.Evaluated++
	r.logDecision(album, res, dec, total)

	if r.dryRun {
		r.log.Info().Str("album", album.Title).Msg("[DRY RUN] Album rating not modified")
		return
	}

	if err := r.apply(ctx, album, dec); err != nil {
		r.log.Error().Err(err).Str("artist", album.Artist).Str("album", album.Title).Msg("Failed to update album rating")
		return
	}
	stats.Updated++
}

// logDecision emits the per-album report line: rated/total counts and the
// old to new rating transition, displayed in stars.
func (r *Runner) logDecision(album plex.Album, res rating.Result, dec rating.Decision, total int) {
	evt := r.log.Info().
		Str("artist", album.Artist).
		Str("album", album.Title).
		Int("rated", res.RatedCount).
		Int("total", total).
		Str("action", dec.Action.String())

	if album.UserRating != nil {
		evt = evt.Float64("old_stars", *album.UserRating/2)
	}
	if dec.Action == rating.ActionSet {
		evt = evt.Float64("new_stars", float64(dec.Value)/2).Bool("override", res.Override)
	}

	evt.Msg("Album rating update needed")
}

func (r *Runner) apply(ctx context.Context, album plex.Album, dec rating.Decision) error {
	switch dec.Action {
	case rating.ActionSet:
		return r.lib.SetRating(ctx, album.RatingKey, dec.Value)
	case rating.ActionClear:
		return r.lib.ClearRating(ctx, album.RatingKey)
	default:
		return nil
	}
}
