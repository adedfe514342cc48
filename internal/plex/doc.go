// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

// Package plex is a minimal Plex Media Server API client covering what the
// album rater needs: library section lookup, album and track enumeration,
// and the rate/unrate call.
//
// Files:
//   - client.go: Client struct, authentication, Ping, HTTP 429 retry
//   - request.go: request building and JSON decoding helpers
//   - library.go: section, album, and track methods plus rating writes
//   - breaker.go: circuit-breaker wrapper used during a rating run
//
// All requests carry the X-Plex-Token header and an Accept: application/json
// header; responses are MediaContainer-wrapped JSON decoded with goccy/go-json.
//
// Scale note: Plex stores user ratings on a 1-10 scale while the rating
// engine works on 1-5 stars. ListTracks converts track ratings to stars;
// album ratings stay on the Plex scale since that is what gets written back.
package plex
