// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

// Package config loads and validates Cadence configuration.
//
// Configuration is layered via Koanf v2: built-in defaults, then an optional
// YAML config file, then environment variables. The environment surface
// matches the variables documented on each config struct; everything is read
// once at startup and the resulting Config is immutable.
package config
