// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

// Package rating implements the album rating derivation algorithm and the
// update policy that turns a derived rating into a concrete action.
//
// # Algorithm
//
// An album rating is derived from its individual track ratings in two damping
// stages, both pulling toward a neutral prior:
//
//  1. Bayesian shrinkage: the track-rating mean is blended with a neutral
//     prior, weighted by a pseudo-count (ConfidenceWeight) relative to the
//     number of rated tracks. Small samples land near the prior; as the
//     sample grows the estimate converges to the observed mean.
//  2. Coverage weighting: the shrunk estimate is blended with the prior a
//     second time, in proportion to the fraction of the album's tracks that
//     are actually rated. A 2-track album rated 5 stars on both tracks lands
//     closer to neutral than a 20-track album fully rated 5 stars.
//
// Two hard overrides bypass the statistical path. If every rated track on
// the album sits at the scale minimum the album is rated minimum outright, a
// floor the smoothing is never allowed to soften. If every rated track sits
// at the scale maximum and the statistical path has nothing to work with
// (no normal-length rated tracks, or coverage below the threshold), the
// album is rated maximum instead of being dropped as insufficient. Duration
// filtering keeps short intro and skit tracks out of the average, but never
// hides a unanimous extreme signal.
//
// The result is converted from the 1-5 star scale to the Plex internal 1-10
// scale with asymmetric rounding: albums below the neutral prior round down
// more readily than albums at or above it.
//
// # Update policy
//
// Decide compares the derived rating with the currently stored one and
// produces one of three actions: none, set, or clear. Re-running over
// unchanged inputs always produces ActionNone.
//
// Both the engine and the policy are pure computation: no I/O, no clock, no
// shared state. All tuning lives in Params, built once at startup.
package rating
