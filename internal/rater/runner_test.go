// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package rater

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/tomtom215/cadence/internal/logging"
	"github.com/tomtom215/cadence/internal/plex"
	"github.com/tomtom215/cadence/internal/rating"
)

type trackListing struct {
	samples []rating.TrackSample
	total   int
}

type setCall struct {
	key   string
	value int
}

// fakeLibrary implements Library for runner tests.
type fakeLibrary struct {
	albums  []plex.Album
	tracks  map[string]trackListing
	listErr error
	fetch   map[string]error // per-album ListTracks failures
	write   map[string]error // per-album SetRating/ClearRating failures

	setCalls   []setCall
	clearCalls []string
}

func (f *fakeLibrary) ListAlbums(_ context.Context) ([]plex.Album, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.albums, nil
}

func (f *fakeLibrary) ListTracks(_ context.Context, key string) ([]rating.TrackSample, int, error) {
	if err := f.fetch[key]; err != nil {
		return nil, 0, err
	}
	l := f.tracks[key]
	return l.samples, l.total, nil
}

func (f *fakeLibrary) SetRating(_ context.Context, key string, value int) error {
	if err := f.write[key]; err != nil {
		return err
	}
	f.setCalls = append(f.setCalls, setCall{key: key, value: value})
	return nil
}

func (f *fakeLibrary) ClearRating(_ context.Context, key string) error {
	if err := f.write[key]; err != nil {
		return err
	}
	f.clearCalls = append(f.clearCalls, key)
	return nil
}

func fptr(v float64) *float64 { return &v }

// fourOfTenRatedFive is the worked example: 4 of 10 tracks rated 5 stars,
// which derives a Plex rating of 6.
func fourOfTenRatedFive() trackListing {
	samples := make([]rating.TrackSample, 10)
	for i := 0; i < 4; i++ {
		samples[i] = rating.TrackSample{Rating: fptr(5)}
	}
	return trackListing{samples: samples, total: 10}
}

func newTestRunner(lib Library, params rating.Params, dryRun bool) *Runner {
	return NewRunner(lib, params, dryRun, logging.NewTestLogger(io.Discard))
}

func TestRunner_ListAlbumsFailureAbortsRun(t *testing.T) {
	lib := &fakeLibrary{listErr: errors.New("connection refused")}
	_, err := newTestRunner(lib, rating.DefaultParams(), false).Run(context.Background())
	if err == nil {
		t.Fatal("Run() succeeded, want error")
	}
}

func TestRunner_SetsNewRating(t *testing.T) {
	lib := &fakeLibrary{
		albums: []plex.Album{{RatingKey: "1", Title: "Album A", Artist: "Artist"}},
		tracks: map[string]trackListing{"1": fourOfTenRatedFive()},
	}

	stats, err := newTestRunner(lib, rating.DefaultParams(), false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Stats{Evaluated: 1, Updated: 1, Skipped: 0}
	if stats != want {
		t.Errorf("Run() stats = %+v, want %+v", stats, want)
	}
	if len(lib.setCalls) != 1 || lib.setCalls[0] != (setCall{key: "1", value: 6}) {
		t.Errorf("setCalls = %+v, want one call setting album 1 to 6", lib.setCalls)
	}
}

func TestRunner_UnchangedRatingIsSkipped(t *testing.T) {
	lib := &fakeLibrary{
		albums: []plex.Album{{RatingKey: "1", Title: "Album A", UserRating: fptr(6)}},
		tracks: map[string]trackListing{"1": fourOfTenRatedFive()},
	}

	stats, err := newTestRunner(lib, rating.DefaultParams(), false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Stats{Evaluated: 0, Updated: 0, Skipped: 1}
	if stats != want {
		t.Errorf("Run() stats = %+v, want %+v", stats, want)
	}
	if len(lib.setCalls) != 0 {
		t.Errorf("setCalls = %+v, want none", lib.setCalls)
	}
}

func TestRunner_InsufficientAlbum(t *testing.T) {
	lowCoverage := trackListing{
		samples: []rating.TrackSample{{Rating: fptr(4)}},
		total:   10,
	}

	t.Run("without opt-in is skipped", func(t *testing.T) {
		lib := &fakeLibrary{
			albums: []plex.Album{{RatingKey: "1", UserRating: fptr(7)}},
			tracks: map[string]trackListing{"1": lowCoverage},
		}

		stats, err := newTestRunner(lib, rating.DefaultParams(), false).Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if want := (Stats{Skipped: 1}); stats != want {
			t.Errorf("Run() stats = %+v, want %+v", stats, want)
		}
		if len(lib.clearCalls) != 0 {
			t.Errorf("clearCalls = %v, want none", lib.clearCalls)
		}
	})

	t.Run("with opt-in clears stored rating", func(t *testing.T) {
		lib := &fakeLibrary{
			albums: []plex.Album{{RatingKey: "1", UserRating: fptr(7)}},
			tracks: map[string]trackListing{"1": lowCoverage},
		}

		params := rating.DefaultParams()
		params.UnrateWhenInsufficient = true

		stats, err := newTestRunner(lib, params, false).Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if want := (Stats{Evaluated: 1, Updated: 1}); stats != want {
			t.Errorf("Run() stats = %+v, want %+v", stats, want)
		}
		if len(lib.clearCalls) != 1 || lib.clearCalls[0] != "1" {
			t.Errorf("clearCalls = %v, want album 1 cleared", lib.clearCalls)
		}
	})
}

func TestRunner_DryRunSuppressesWrites(t *testing.T) {
	lib := &fakeLibrary{
		albums: []plex.Album{{RatingKey: "1", Title: "Album A"}},
		tracks: map[string]trackListing{"1": fourOfTenRatedFive()},
	}

	stats, err := newTestRunner(lib, rating.DefaultParams(), true).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Stats{Evaluated: 1, Updated: 0, Skipped: 0}
	if stats != want {
		t.Errorf("Run() stats = %+v, want %+v", stats, want)
	}
	if len(lib.setCalls) != 0 || len(lib.clearCalls) != 0 {
		t.Errorf("writes issued in dry run: set=%v clear=%v", lib.setCalls, lib.clearCalls)
	}
}

func TestRunner_TrackFetchFailureSkipsAlbumAndContinues(t *testing.T) {
	lib := &fakeLibrary{
		albums: []plex.Album{
			{RatingKey: "1", Title: "Broken"},
			{RatingKey: "2", Title: "Fine"},
		},
		tracks: map[string]trackListing{"2": fourOfTenRatedFive()},
		fetch:  map[string]error{"1": errors.New("timeout")},
	}

	stats, err := newTestRunner(lib, rating.DefaultParams(), false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Stats{Evaluated: 1, Updated: 1, Skipped: 1}
	if stats != want {
		t.Errorf("Run() stats = %+v, want %+v", stats, want)
	}
	if len(lib.setCalls) != 1 || lib.setCalls[0].key != "2" {
		t.Errorf("setCalls = %+v, want only album 2", lib.setCalls)
	}
}

func TestRunner_UpdateFailureCountsNotUpdatedAndContinues(t *testing.T) {
	lib := &fakeLibrary{
		albums: []plex.Album{
			{RatingKey: "1", Title: "Fails"},
			{RatingKey: "2", Title: "Works"},
		},
		tracks: map[string]trackListing{
			"1": fourOfTenRatedFive(),
			"2": fourOfTenRatedFive(),
		},
		write: map[string]error{"1": errors.New("server error")},
	}

	stats, err := newTestRunner(lib, rating.DefaultParams(), false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Stats{Evaluated: 2, Updated: 1, Skipped: 0}
	if stats != want {
		t.Errorf("Run() stats = %+v, want %+v", stats, want)
	}
}

// TestRunner_SecondRunIsIdempotent simulates a re-run after all updates were
// applied: every album's stored rating already matches, so nothing happens.
func TestRunner_SecondRunIsIdempotent(t *testing.T) {
	lib := &fakeLibrary{
		albums: []plex.Album{
			{RatingKey: "1", UserRating: fptr(6)},
			{RatingKey: "2", UserRating: fptr(6)},
		},
		tracks: map[string]trackListing{
			"1": fourOfTenRatedFive(),
			"2": fourOfTenRatedFive(),
		},
	}

	stats, err := newTestRunner(lib, rating.DefaultParams(), false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Stats{Evaluated: 0, Updated: 0, Skipped: 2}
	if stats != want {
		t.Errorf("Run() stats = %+v, want %+v", stats, want)
	}
	if len(lib.setCalls)+len(lib.clearCalls) != 0 {
		t.Errorf("writes issued on idempotent re-run: set=%v clear=%v", lib.setCalls, lib.clearCalls)
	}
}
