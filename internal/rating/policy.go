// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package rating

// Decide converts a computed rating and the currently stored album rating
// into a concrete update action.
//
// Rules, in order:
//
//  1. Insufficient data: clear the stored rating only when the operator
//     opted in via UnrateWhenInsufficient and a rating is actually stored;
//     otherwise do nothing. This guards hand-set ratings from being
//     silently stripped when an album drops below the coverage threshold.
//  2. Computed equals stored: do nothing. Re-running over unchanged inputs
//     never re-issues an update.
//  3. Otherwise: set the computed rating.
//
// current is the stored album rating on the Plex 1-10 scale, nil when the
// album is unrated. The policy is the only place the stored rating is read.
func Decide(res Result, current *float64, p Params) Decision {
	if !res.Sufficient {
		if p.UnrateWhenInsufficient && current != nil {
			return Decision{Action: ActionClear}
		}
		return Decision{Action: ActionNone}
	}

	if current != nil && *current == float64(res.Value) {
		return Decision{Action: ActionNone}
	}

	return Decision{Action: ActionSet, Value: res.Value}
}
