// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package rating

// Rating scale bounds.
//
// Track ratings arrive on the 1-5 star scale. Album ratings are written back
// on the Plex internal 1-10 scale, where 2 is the lowest meaningful value
// (one star) and 10 the highest (five stars).
const (
	StarMin = 1.0
	StarMax = 5.0

	PlexMin = 2
	PlexMax = 10
)

// TrackSample is one track's contribution to an album rating computation.
// Both fields are optional: unrated tracks carry no rating, and some media
// items report no duration at all.
type TrackSample struct {
	// Rating is the track's user rating on the 1-5 star scale, nil if unrated.
	Rating *float64

	// DurationSeconds is the track length in seconds, nil if unknown.
	DurationSeconds *float64
}

// Params holds the tuning parameters for the rating engine and update policy.
// Built once at startup from configuration and immutable afterwards; passed
// explicitly wherever needed.
type Params struct {
	// NeutralRating is the prior the estimate is pulled toward, on the 1-5
	// star scale. Midpoint of the scale by default.
	NeutralRating float64

	// ConfidenceWeight is the pseudo-count strength of the prior. Higher
	// values require more rated tracks before the observed mean dominates.
	ConfidenceWeight int

	// MinCoverage is the fraction of an album's tracks that must be rated
	// (after duration filtering) for the album to be rated at all.
	MinCoverage float64

	// MinTrackDuration excludes tracks shorter than this many seconds from
	// the normal aggregate. Short tracks still count for override detection.
	MinTrackDuration float64

	// RoundingBiasBelowNeutral and RoundingBiasAtOrAboveNeutral are the
	// asymmetric rounding offsets applied when converting to the Plex scale.
	// Below-neutral albums round down more readily than at-or-above ones.
	RoundingBiasBelowNeutral     float64
	RoundingBiasAtOrAboveNeutral float64

	// UnrateWhenInsufficient clears an existing album rating when the album
	// no longer meets the coverage requirement. Off by default so a rating
	// the operator set by hand is never silently stripped.
	UnrateWhenInsufficient bool
}

// DefaultParams returns the default tuning parameters.
func DefaultParams() Params {
	return Params{
		NeutralRating:                2.5,
		ConfidenceWeight:             4,
		MinCoverage:                  0.2,
		MinTrackDuration:             60,
		RoundingBiasBelowNeutral:     0.65,
		RoundingBiasAtOrAboveNeutral: 0.45,
		UnrateWhenInsufficient:       false,
	}
}

// Result is the outcome of one album rating computation.
type Result struct {
	// Value is the derived album rating on the Plex 1-10 scale. Only
	// meaningful when Sufficient is true.
	Value int

	// Sufficient is false when the album has too few normal-length rated
	// tracks for any rating to be derived.
	Sufficient bool

	// Override marks a result produced by the unanimous-extreme shortcut
	// rather than the statistical path.
	Override bool

	// RatedCount is the number of tracks in the normal aggregate set.
	RatedCount int
}

// Action is the kind of update to perform for an album.
type Action int

const (
	// ActionNone leaves the stored rating untouched.
	ActionNone Action = iota

	// ActionSet writes Decision.Value as the album rating.
	ActionSet

	// ActionClear removes the stored album rating.
	ActionClear
)

// String returns a human-readable action name for logging.
func (a Action) String() string {
	switch a {
	case ActionSet:
		return "set"
	case ActionClear:
		return "clear"
	default:
		return "none"
	}
}

// Decision is the update policy's verdict for one album.
type Decision struct {
	Action Action

	// Value is the rating to write for ActionSet, on the Plex 1-10 scale.
	Value int
}
