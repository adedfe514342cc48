// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package config

import (
	"github.com/tomtom215/cadence/internal/rating"
)

// Config holds all application configuration.
//
// Configuration loading order (Koanf v2, highest priority wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml or CONFIG_PATH)
//  3. Environment variables
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Plex    PlexConfig    `koanf:"plex"`
	Rating  RatingConfig  `koanf:"rating"`
	Rater   RaterConfig   `koanf:"rater"`
	Logging LoggingConfig `koanf:"logging"`
}

// PlexConfig holds Plex Media Server connection settings.
//
// Environment variables:
//   - PLEX_URL: server URL, e.g. http://plex:32400 (required)
//   - PLEX_TOKEN: X-Plex-Token for authentication (required)
//   - PLEX_MUSIC_LIBRARY: music library section name (default: "Music")
type PlexConfig struct {
	URL          string `koanf:"url"`
	Token        string `koanf:"token"`
	MusicLibrary string `koanf:"music_library"`
}

// RatingConfig holds the rating algorithm tuning parameters.
//
// Environment variables:
//   - NEUTRAL_RATING: Bayesian prior, 1-5 star scale (default: 2.5)
//   - CONFIDENCE_WEIGHT: pseudo-count strength of the prior (default: 4)
//   - MIN_COVERAGE: fraction of rated tracks required (default: 0.2)
//   - MIN_TRACK_DURATION: seconds below which tracks are excluded (default: 60)
//   - ROUNDING_BIAS_BAD_ALBUM: rounding offset below neutral (default: 0.65)
//   - ROUNDING_BIAS_GOOD_ALBUM: rounding offset at or above neutral (default: 0.45)
//   - UNRATE_EMPTY_ALBUMS: clear ratings on insufficient albums (default: false)
type RatingConfig struct {
	NeutralRating                float64 `koanf:"neutral_rating"`
	ConfidenceWeight             int     `koanf:"confidence_weight"`
	MinCoverage                  float64 `koanf:"min_coverage"`
	MinTrackDuration             float64 `koanf:"min_track_duration"`
	RoundingBiasBelowNeutral     float64 `koanf:"rounding_bias_below_neutral"`
	RoundingBiasAtOrAboveNeutral float64 `koanf:"rounding_bias_at_or_above_neutral"`
	UnrateWhenInsufficient       bool    `koanf:"unrate_when_insufficient"`
}

// RaterConfig holds run behavior settings.
//
// Environment variables:
//   - DRY_RUN: compute and log decisions without writing them (default: true)
type RaterConfig struct {
	DryRun bool `koanf:"dry_run"`
}

// LoggingConfig holds log output settings.
//
// Environment variables:
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: console or json (default: console)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Params converts the rating configuration into the engine's parameter value.
func (c *Config) Params() rating.Params {
	return rating.Params{
		NeutralRating:                c.Rating.NeutralRating,
		ConfidenceWeight:             c.Rating.ConfidenceWeight,
		MinCoverage:                  c.Rating.MinCoverage,
		MinTrackDuration:             c.Rating.MinTrackDuration,
		RoundingBiasBelowNeutral:     c.Rating.RoundingBiasBelowNeutral,
		RoundingBiasAtOrAboveNeutral: c.Rating.RoundingBiasAtOrAboveNeutral,
		UnrateWhenInsufficient:       c.Rating.UnrateWhenInsufficient,
	}
}
