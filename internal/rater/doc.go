// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

// Package rater orchestrates one rating run over a music library.
//
// For each album, sequentially: fetch per-track rating samples, derive an
// album rating with the rating engine, compare against the stored rating via
// the update policy, and apply the resulting action. Per-album failures are
// counted and the run continues; only album enumeration failure aborts the
// run. A run keeps no state, so re-running over unchanged inputs issues no
// updates.
package rater
