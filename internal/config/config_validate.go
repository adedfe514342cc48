// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package config

import (
	"fmt"
	"net/url"

	"github.com/tomtom215/cadence/internal/rating"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateRating(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePlex() error {
	if c.Plex.URL == "" {
		return fmt.Errorf("PLEX_URL is required")
	}
	if err := validateHTTPURL(c.Plex.URL, "PLEX_URL"); err != nil {
		return err
	}
	if c.Plex.Token == "" {
		return fmt.Errorf("PLEX_TOKEN is required")
	}
	if c.Plex.MusicLibrary == "" {
		return fmt.Errorf("PLEX_MUSIC_LIBRARY must not be empty")
	}
	return nil
}

func (c *Config) validateRating() error {
	r := c.Rating
	if r.NeutralRating < rating.StarMin || r.NeutralRating > rating.StarMax {
		return fmt.Errorf("NEUTRAL_RATING must be between %v and %v, got %v", rating.StarMin, rating.StarMax, r.NeutralRating)
	}
	if r.ConfidenceWeight < 0 {
		return fmt.Errorf("CONFIDENCE_WEIGHT must not be negative, got %d", r.ConfidenceWeight)
	}
	if r.MinCoverage < 0 || r.MinCoverage > 1 {
		return fmt.Errorf("MIN_COVERAGE must be between 0 and 1, got %v", r.MinCoverage)
	}
	if r.MinTrackDuration < 0 {
		return fmt.Errorf("MIN_TRACK_DURATION must not be negative, got %v", r.MinTrackDuration)
	}
	if r.RoundingBiasBelowNeutral < 0 || r.RoundingBiasBelowNeutral >= 1 {
		return fmt.Errorf("ROUNDING_BIAS_BAD_ALBUM must be in [0, 1), got %v", r.RoundingBiasBelowNeutral)
	}
	if r.RoundingBiasAtOrAboveNeutral < 0 || r.RoundingBiasAtOrAboveNeutral >= 1 {
		return fmt.Errorf("ROUNDING_BIAS_GOOD_ALBUM must be in [0, 1), got %v", r.RoundingBiasAtOrAboveNeutral)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks the value parses as an absolute http or https URL.
func validateHTTPURL(value, name string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
