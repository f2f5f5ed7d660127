// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/pkg/slice"
)

type bookRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	CoverURL      string `json:"coverUrl"`
	IsFeatured    bool   `json:"isFeatured"`
	FeaturedOrder int    `json:"featuredOrder"`
}

type playlistRecord struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	CoverURL      string        `json:"coverUrl"`
	IsFeatured    bool          `json:"isFeatured"`
	FeaturedOrder int           `json:"featuredOrder"`
	Items         []trackRecord `json:"items"`
}

type trackRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	IsFeatured    bool   `json:"isFeatured"`
	FeaturedOrder int    `json:"featuredOrder"`
}

type flagWrite struct {
	IsFeatured    bool `json:"isFeatured"`
	FeaturedOrder int  `json:"featuredOrder"`
}

type batchItem struct {
	Kind       Kind   `json:"type"`
	ID         string `json:"id"`
	PlaylistID string `json:"playlistId,omitempty"`
	flagWrite
}

// BackendCatalog reads books and playlists from the content backend.
type BackendCatalog struct {
	client *backend.Client
}

func NewBackendCatalog(client *backend.Client) *BackendCatalog {
	return &BackendCatalog{client: client}
}

// Snapshot fetches books and playlists concurrently. Either failing fails the snapshot.
func (catalog *BackendCatalog) Snapshot(context context.Context) ([]Candidate, error) {
	var books []bookRecord
	var playlists []playlistRecord

	group, groupCtx := errgroup.WithContext(context)
	group.Go(func() error {
		var err error
		books, err = backend.FetchAll[bookRecord](groupCtx, catalog.client, "/api/books", nil, 0)
		return err
	})
	group.Go(func() error {
		var err error
		playlists, err = backend.FetchAll[playlistRecord](groupCtx, catalog.client, "/api/playlists", nil, 0)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(books)+len(playlists))
	for _, book := range books {
		candidates = append(candidates, Candidate{
			Entry:      Entry{Kind: KindBook, ID: book.ID, Title: book.Title, Subtitle: book.Author, CoverURL: book.CoverURL, Order: book.FeaturedOrder},
			IsFeatured: book.IsFeatured,
		})
	}
	for _, playlist := range playlists {
		candidates = append(candidates, Candidate{
			Entry:      Entry{Kind: KindPlaylist, ID: playlist.ID, Title: playlist.Title, CoverURL: playlist.CoverURL, Order: playlist.FeaturedOrder},
			IsFeatured: playlist.IsFeatured,
		})
		for _, track := range playlist.Items {
			candidates = append(candidates, Candidate{
				Entry: Entry{
					Kind:       KindEpisode,
					ID:         track.ID,
					PlaylistID: playlist.ID,
					Title:      track.Title,
					Subtitle:   playlist.Title,
					CoverURL:   playlist.CoverURL,
					Order:      track.FeaturedOrder,
				},
				IsFeatured: track.IsFeatured,
			})
		}
	}

	return candidates, nil
}

// Apply PATCHes the featured flag of one book, playlist or playlist item.
func (catalog *BackendCatalog) Apply(context context.Context, change Change) error {
	path, err := itemPath(change.Entry)
	if err != nil {
		return err
	}
	return catalog.client.Patch(context, path, flagWrite{IsFeatured: change.Featured, FeaturedOrder: change.Order}, nil)
}

// ApplyBatch sends the plan as a single PUT /api/featured.
func (catalog *BackendCatalog) ApplyBatch(context context.Context, changes []Change) error {
	items := slice.Map(changes, func(change Change) batchItem {
		return batchItem{
			Kind:       change.Entry.Kind,
			ID:         change.Entry.ID,
			PlaylistID: change.Entry.PlaylistID,
			flagWrite:  flagWrite{IsFeatured: change.Featured, FeaturedOrder: change.Order},
		}
	})
	return catalog.client.Put(context, "/api/featured", map[string]any{"items": items}, nil)
}

func itemPath(entry Entry) (string, error) {
	switch entry.Kind {
	case KindBook:
		return "/api/books/" + url.PathEscape(entry.ID), nil
	case KindPlaylist:
		return "/api/playlists/" + url.PathEscape(entry.ID), nil
	case KindEpisode:
		return "/api/playlists/" + url.PathEscape(entry.PlaylistID) + "/items/" + url.PathEscape(entry.ID), nil
	default:
		return "", fmt.Errorf("featured: unknown entry kind %q", entry.Kind)
	}
}
