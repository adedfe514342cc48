// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

// Package main is the entry point for the Cadence album auto-rater.
//
// Cadence derives album ratings from individual track ratings in a Plex music
// library and writes them back. The rating is a confidence-aware aggregate:
// Bayesian shrinkage toward a neutral prior, damped again by how much of the
// album is actually rated, with hard overrides for unanimously extreme
// albums.
//
// Cadence runs once and exits; schedule it with cron or a systemd timer.
// It keeps no state between runs, and a re-run over an unchanged library
// issues no updates.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, optional config.yaml, built-in
// defaults.
//
//	export PLEX_URL=http://plex:32400
//	export PLEX_TOKEN=your-plex-token
//	export PLEX_MUSIC_LIBRARY=Music   # default
//	export DRY_RUN=false              # default true: preview only
//	./cadence
//
// Algorithm tuning (defaults in parentheses):
//
//	NEUTRAL_RATING (2.5)            Bayesian prior, 1-5 star scale
//	CONFIDENCE_WEIGHT (4)           pseudo-count strength of the prior
//	MIN_COVERAGE (0.2)              rated-track fraction required
//	MIN_TRACK_DURATION (60)         seconds; shorter tracks leave the average
//	UNRATE_EMPTY_ALBUMS (false)     clear ratings that lose coverage
//	ROUNDING_BIAS_BAD_ALBUM (0.65)  rounding offset below neutral
//	ROUNDING_BIAS_GOOD_ALBUM (0.45) rounding offset at or above neutral
//
// # Exit codes
//
// Cadence exits non-zero when configuration is invalid, the Plex server is
// unreachable at startup, or album enumeration fails. Per-album failures are
// logged, counted in the run summary, and do not affect the exit code.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cadence/internal/config"
	"github.com/tomtom215/cadence/internal/logging"
	"github.com/tomtom215/cadence/internal/plex"
	"github.com/tomtom215/cadence/internal/rater"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("library", cfg.Plex.MusicLibrary).
		Bool("dry_run", cfg.Rater.DryRun).
		Float64("min_coverage", cfg.Rating.MinCoverage).
		Float64("min_track_duration", cfg.Rating.MinTrackDuration).
		Bool("unrate_empty_albums", cfg.Rating.UnrateWhenInsufficient).
		Msg("Starting Cadence album auto-rater")

	client := plex.NewClient(cfg.Plex.URL, cfg.Plex.Token)
	if err := client.Ping(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to Plex server")
	}

	sectionKey, err := client.FindMusicSection(ctx, cfg.Plex.MusicLibrary)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to locate music library")
	}

	lib := plex.NewLibrary(client, sectionKey)
	runner := rater.NewRunner(lib, cfg.Params(), cfg.Rater.DryRun,
		logging.With().Str("component", "rater").Logger())

	if _, err := runner.Run(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Rating run failed")
	}
}
