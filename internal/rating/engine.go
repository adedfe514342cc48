// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package rating

import (
	"math"

	"github.com/rs/zerolog"
)

// Engine derives album ratings from track samples. It holds the tuning
// parameters and a logger for data-quality diagnostics; it performs no I/O
// and keeps no per-album state, so a single Engine serves a whole run.
type Engine struct {
	params Params
	log    zerolog.Logger
}

// NewEngine creates a rating engine with the given parameters.
func NewEngine(p Params, log zerolog.Logger) *Engine {
	return &Engine{params: p, log: log}
}

// Compute derives an album rating from its track samples.
//
// samples is the full per-track sample list for the album, rated or not.
// totalTracks is the album's track count including unrated and excluded
// tracks; it is the denominator of the coverage fraction.
//
// The unanimous-minimum override is checked first and wins over both the
// statistical path and the coverage gate: an album whose every rated track
// sits at the scale minimum is rated minimum no matter how few tracks are
// rated. The unanimous-maximum override is the rescue path for albums the
// statistical path cannot rate (no normal-length rated tracks, or coverage
// below the threshold): a unanimously loved album is never hidden behind
// the coverage gate, but a well-covered album still earns its top rating
// through the damped estimate rather than by fiat.
func (e *Engine) Compute(samples []TrackSample, totalTracks int) Result {
	normal, override := e.partition(samples)

	if unanimous(override, StarMin) {
		return Result{Value: PlexMin, Sufficient: true, Override: true, RatedCount: len(normal)}
	}

	coverage := 0.0
	if totalTracks > 0 {
		coverage = float64(len(normal)) / float64(totalTracks)
	}
	if len(normal) == 0 || coverage < e.params.MinCoverage {
		if unanimous(override, StarMax) {
			return Result{Value: PlexMax, Sufficient: true, Override: true, RatedCount: len(normal)}
		}
		return Result{RatedCount: len(normal)}
	}

	sum := 0.0
	for _, r := range normal {
		sum += r
	}
	avg := sum / float64(len(normal))

	// Bayesian shrinkage toward the neutral prior, then a second pull toward
	// neutral in proportion to the unrated fraction of the album.
	n := float64(len(normal))
	w := float64(e.params.ConfidenceWeight)
	bayesian := (n*avg + w*e.params.NeutralRating) / (n + w)
	final := bayesian*coverage + e.params.NeutralRating*(1-coverage)

	return Result{
		Value:      e.toPlexScale(final),
		Sufficient: true,
		RatedCount: len(normal),
	}
}

// partition splits samples into the normal aggregate set and the override
// set. The normal set requires a rating and a duration that is absent or at
// least MinTrackDuration; the override set requires only a rating. Samples
// with out-of-range ratings are a data-quality defect and excluded from both.
func (e *Engine) partition(samples []TrackSample) (normal, override []float64) {
	for _, s := range samples {
		if s.Rating == nil {
			continue
		}
		r := *s.Rating
		if r < StarMin || r > StarMax {
			e.log.Debug().Float64("rating", r).Msg("Track rating outside star scale, excluding sample")
			continue
		}

		override = append(override, r)
		if s.DurationSeconds != nil && *s.DurationSeconds < e.params.MinTrackDuration {
			continue
		}
		normal = append(normal, r)
	}
	return normal, override
}

// unanimous reports whether the override set is non-empty and every rating
// in it equals the given scale extreme.
func unanimous(override []float64, extreme float64) bool {
	if len(override) == 0 {
		return false
	}
	for _, r := range override {
		if r != extreme {
			return false
		}
	}
	return true
}

// toPlexScale converts a 1-5 star rating to the Plex internal 1-10 scale
// with asymmetric rounding. Values below one star clamp to PlexMin; albums
// below the neutral prior are rounded more harshly than those at or above it.
func (e *Engine) toPlexScale(final float64) int {
	scaled := final * 2
	if scaled < float64(PlexMin) {
		return PlexMin
	}

	bias := e.params.RoundingBiasAtOrAboveNeutral
	if final < e.params.NeutralRating {
		bias = e.params.RoundingBiasBelowNeutral
	}

	v := int(math.Floor(scaled + bias))
	if v > PlexMax {
		return PlexMax
	}
	return v
}
