// Cadence - Plex Album Auto-Rater
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cadence

package plex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tomtom215/cadence/internal/rating"
)

// Plex media type codes used in library queries.
const (
	mediaTypeAlbum = 9
)

// ratingIdentifier is the identifier Plex expects on rating writes.
const ratingIdentifier = "com.plexapp.plugins.library"

// albumPageSize is the X-Plex-Container-Size used when paging album listings.
const albumPageSize = 200

// Album is one album entry from a music library section.
type Album struct {
	// RatingKey is the Plex unique content identifier.
	RatingKey string

	// Title is the album title; Artist is the album artist.
	Title  string
	Artist string

	// UserRating is the stored album rating on the Plex 1-10 scale, nil
	// when the album is unrated.
	UserRating *float64
}

// sectionsResponse wraps GET /library/sections.
type sectionsResponse struct {
	MediaContainer struct {
		Directory []sectionDirectory `json:"Directory"`
	} `json:"MediaContainer"`
}

type sectionDirectory struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// containerResponse wraps paginated metadata listings.
type containerResponse struct {
	MediaContainer struct {
		Size      int            `json:"size"`
		TotalSize int            `json:"totalSize"`
		Metadata  []itemMetadata `json:"Metadata"`
	} `json:"MediaContainer"`
}

// itemMetadata carries the album and track fields the rater reads.
type itemMetadata struct {
	RatingKey   string   `json:"ratingKey"`
	Title       string   `json:"title"`
	ParentTitle string   `json:"parentTitle,omitempty"`
	UserRating  *float64 `json:"userRating,omitempty"`
	Duration    *int64   `json:"duration,omitempty"` // milliseconds
}

// FindMusicSection looks up a music library section by name and returns its
// section key.
//
// Endpoint: GET /library/sections
func (c *Client) FindMusicSection(ctx context.Context, name string) (string, error) {
	var resp sectionsResponse
	if err := c.doJSONRequest(ctx, "/library/sections", &resp); err != nil {
		return "", err
	}

	for _, dir := range resp.MediaContainer.Directory {
		if dir.Type == "artist" && dir.Title == name {
			return dir.Key, nil
		}
	}

	return "", fmt.Errorf("music library section %q not found", name)
}

// ListAlbums retrieves all albums in a library section, paging through the
// listing with X-Plex-Container-Start/Size.
//
// Endpoint: GET /library/sections/{sectionKey}/all?type=9
func (c *Client) ListAlbums(ctx context.Context, sectionKey string) ([]Album, error) {
	var albums []Album

	for start := 0; ; start += albumPageSize {
		query := url.Values{}
		query.Add("type", fmt.Sprintf("%d", mediaTypeAlbum))
		query.Add("X-Plex-Container-Start", fmt.Sprintf("%d", start))
		query.Add("X-Plex-Container-Size", fmt.Sprintf("%d", albumPageSize))

		var resp containerResponse
		if err := c.doJSONRequestWithQuery(ctx, "/library/sections/"+sectionKey+"/all", query, &resp); err != nil {
			return nil, err
		}

		for _, m := range resp.MediaContainer.Metadata {
			albums = append(albums, Album{
				RatingKey:  m.RatingKey,
				Title:      m.Title,
				Artist:     m.ParentTitle,
				UserRating: m.UserRating,
			})
		}

		if start+resp.MediaContainer.Size >= resp.MediaContainer.TotalSize || resp.MediaContainer.Size == 0 {
			break
		}
	}

	return albums, nil
}

// ListTracks retrieves an album's tracks as rating samples, plus the album's
// total track count. Track ratings are converted from the Plex 1-10 scale to
// 1-5 stars and durations from milliseconds to seconds.
//
// Endpoint: GET /library/metadata/{ratingKey}/children
func (c *Client) ListTracks(ctx context.Context, albumRatingKey string) ([]rating.TrackSample, int, error) {
	var resp containerResponse
	if err := c.doJSONRequest(ctx, "/library/metadata/"+albumRatingKey+"/children", &resp); err != nil {
		return nil, 0, err
	}

	tracks := resp.MediaContainer.Metadata
	samples := make([]rating.TrackSample, 0, len(tracks))
	for _, m := range tracks {
		var sample rating.TrackSample
		if m.UserRating != nil {
			stars := *m.UserRating / 2
			sample.Rating = &stars
		}
		if m.Duration != nil {
			secs := float64(*m.Duration) / 1000
			sample.DurationSeconds = &secs
		}
		samples = append(samples, sample)
	}

	return samples, len(tracks), nil
}

// SetRating writes an album rating on the Plex 1-10 scale.
//
// Endpoint: PUT /:/rate?key={ratingKey}&identifier=com.plexapp.plugins.library&rating={value}
func (c *Client) SetRating(ctx context.Context, ratingKey string, value int) error {
	return c.rate(ctx, ratingKey, fmt.Sprintf("%d", value))
}

// ClearRating removes an album rating. Plex treats a rating of -1 as unrate.
func (c *Client) ClearRating(ctx context.Context, ratingKey string) error {
	return c.rate(ctx, ratingKey, "-1")
}

func (c *Client) rate(ctx context.Context, ratingKey, value string) error {
	query := url.Values{}
	query.Add("key", ratingKey)
	query.Add("identifier", ratingIdentifier)
	query.Add("rating", value)

	return c.doRequest(ctx, requestConfig{
		method: http.MethodPut,
		path:   "/:/rate",
		query:  query,
	}, nil)
}
