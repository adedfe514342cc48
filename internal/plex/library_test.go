// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package plex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_FindMusicSection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/library/sections" {
			t.Errorf("path = %q, want /library/sections", r.URL.Path)
		}
		w.Write([]byte(`{"MediaContainer":{"Directory":[
			{"key":"1","type":"movie","title":"Movies"},
			{"key":"2","type":"artist","title":"Music"},
			{"key":"3","type":"artist","title":"Audiobooks"}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")

	t.Run("matches artist section by title", func(t *testing.T) {
		key, err := client.FindMusicSection(context.Background(), "Music")
		if err != nil {
			t.Fatalf("FindMusicSection() error = %v", err)
		}
		if key != "2" {
			t.Errorf("section key = %q, want %q", key, "2")
		}
	})

	t.Run("missing section is an error", func(t *testing.T) {
		_, err := client.FindMusicSection(context.Background(), "Vinyl")
		if err == nil {
			t.Fatal("FindMusicSection() succeeded, want error")
		}
		if !strings.Contains(err.Error(), "Vinyl") {
			t.Errorf("error = %v, want it to name the missing section", err)
		}
	})

	t.Run("movie section with matching title does not match", func(t *testing.T) {
		_, err := client.FindMusicSection(context.Background(), "Movies")
		if err == nil {
			t.Fatal("FindMusicSection() matched a movie section, want error")
		}
	})
}

func TestClient_ListAlbums_Pagination(t *testing.T) {
	// Two pages: the first full page of albumPageSize entries, then one more.
	total := albumPageSize + 1

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/library/sections/2/all" {
			t.Errorf("path = %q, want /library/sections/2/all", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "9" {
			t.Errorf("type = %q, want 9", got)
		}

		start := 0
		fmt.Sscanf(r.URL.Query().Get("X-Plex-Container-Start"), "%d", &start)

		count := albumPageSize
		if start+count > total {
			count = total - start
		}

		var entries []string
		for i := 0; i < count; i++ {
			n := start + i
			entry := fmt.Sprintf(`{"ratingKey":"%d","title":"Album %d","parentTitle":"Artist"}`, n, n)
			if n == 0 {
				entry = `{"ratingKey":"0","title":"Album 0","parentTitle":"Artist","userRating":8}`
			}
			entries = append(entries, entry)
		}

		fmt.Fprintf(w, `{"MediaContainer":{"size":%d,"totalSize":%d,"Metadata":[%s]}}`,
			count, total, strings.Join(entries, ","))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	albums, err := client.ListAlbums(context.Background(), "2")
	if err != nil {
		t.Fatalf("ListAlbums() error = %v", err)
	}

	if len(albums) != total {
		t.Fatalf("len(albums) = %d, want %d", len(albums), total)
	}
	first := albums[0]
	if first.RatingKey != "0" || first.Title != "Album 0" || first.Artist != "Artist" {
		t.Errorf("first album = %+v", first)
	}
	if first.UserRating == nil || *first.UserRating != 8 {
		t.Errorf("first album UserRating = %v, want 8", first.UserRating)
	}
	if albums[1].UserRating != nil {
		t.Errorf("unrated album UserRating = %v, want nil", albums[1].UserRating)
	}
}

func TestClient_ListTracks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/library/metadata/42/children" {
			t.Errorf("path = %q, want /library/metadata/42/children", r.URL.Path)
		}
		w.Write([]byte(`{"MediaContainer":{"size":3,"Metadata":[
			{"ratingKey":"100","title":"Intro","userRating":10,"duration":30000},
			{"ratingKey":"101","title":"Song","userRating":6,"duration":240000},
			{"ratingKey":"102","title":"Unrated","duration":180000}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	samples, count, err := client.ListTracks(context.Background(), "42")
	if err != nil {
		t.Fatalf("ListTracks() error = %v", err)
	}

	if count != 3 {
		t.Errorf("total tracks = %d, want 3", count)
	}
	if len(samples) != 3 {
		t.Fatalf("len(samples) = %d, want 3", len(samples))
	}

	// Plex 10 -> 5 stars, 30000ms -> 30s
	if samples[0].Rating == nil || *samples[0].Rating != 5 {
		t.Errorf("samples[0].Rating = %v, want 5 stars", samples[0].Rating)
	}
	if samples[0].DurationSeconds == nil || *samples[0].DurationSeconds != 30 {
		t.Errorf("samples[0].DurationSeconds = %v, want 30", samples[0].DurationSeconds)
	}
	if samples[1].Rating == nil || *samples[1].Rating != 3 {
		t.Errorf("samples[1].Rating = %v, want 3 stars", samples[1].Rating)
	}
	if samples[2].Rating != nil {
		t.Errorf("samples[2].Rating = %v, want nil for unrated track", samples[2].Rating)
	}
}

func TestClient_RatingWrites(t *testing.T) {
	type seen struct {
		method string
		path   string
		query  map[string]string
	}

	var last seen
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		last = seen{method: r.Method, path: r.URL.Path, query: q}
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")

	t.Run("set rating", func(t *testing.T) {
		if err := client.SetRating(context.Background(), "42", 6); err != nil {
			t.Fatalf("SetRating() error = %v", err)
		}
		if last.method != http.MethodPut || last.path != "/:/rate" {
			t.Errorf("request = %s %s, want PUT /:/rate", last.method, last.path)
		}
		if last.query["key"] != "42" || last.query["rating"] != "6" {
			t.Errorf("query = %v, want key=42 rating=6", last.query)
		}
		if last.query["identifier"] != ratingIdentifier {
			t.Errorf("identifier = %q, want %q", last.query["identifier"], ratingIdentifier)
		}
	})

	t.Run("clear rating", func(t *testing.T) {
		if err := client.ClearRating(context.Background(), "42"); err != nil {
			t.Fatalf("ClearRating() error = %v", err)
		}
		if last.query["rating"] != "-1" {
			t.Errorf("rating = %q, want -1 for unrate", last.query["rating"])
		}
	})

	t.Run("server error surfaces", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer failing.Close()

		if err := NewClient(failing.URL, "tok").SetRating(context.Background(), "42", 6); err == nil {
			t.Fatal("SetRating() succeeded, want error")
		}
	})
}
