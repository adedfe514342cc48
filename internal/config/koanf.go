// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/cadence/internal/rating"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cadence/config.yaml",
	"/etc/cadence/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	p := rating.DefaultParams()
	return &Config{
		Plex: PlexConfig{
			URL:          "",
			Token:        "",
			MusicLibrary: "Music",
		},
		Rating: RatingConfig{
			NeutralRating:                p.NeutralRating,
			ConfidenceWeight:             p.ConfidenceWeight,
			MinCoverage:                  p.MinCoverage,
			MinTrackDuration:             p.MinTrackDuration,
			RoundingBiasBelowNeutral:     p.RoundingBiasBelowNeutral,
			RoundingBiasAtOrAboveNeutral: p.RoundingBiasAtOrAboveNeutral,
			UnrateWhenInsufficient:       p.UnrateWhenInsufficient,
		},
		Rater: RaterConfig{
			DryRun: true, // preview by default; opt in to writes
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in values
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths. Returns
// the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return empty string and are skipped, which keeps
// unrelated environment noise out of the configuration.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		"plex_url":           "plex.url",
		"plex_token":         "plex.token",
		"plex_music_library": "plex.music_library",

		"neutral_rating":           "rating.neutral_rating",
		"confidence_weight":        "rating.confidence_weight",
		"min_coverage":             "rating.min_coverage",
		"min_track_duration":       "rating.min_track_duration",
		"rounding_bias_bad_album":  "rating.rounding_bias_below_neutral",
		"rounding_bias_good_album": "rating.rounding_bias_at_or_above_neutral",
		"unrate_empty_albums":      "rating.unrate_when_insufficient",

		"dry_run": "rater.dry_run",

		"log_level":  "logging.level",
		"log_format": "logging.format",
	}

	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
