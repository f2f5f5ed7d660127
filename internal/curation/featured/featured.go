// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package featured curates the home-screen carousel.

Staff edit a per-session draft: entries are added from the catalogue, removed,
and moved up or down. Saving reconciles the draft against the snapshot taken
when the draft was built. Items no longer present are un-featured, then every
remaining entry is featured with its position as featuredOrder.
*/
package featured

import (
	"time"
)

// Kind is the type of content an entry points at.
type Kind string

const (
	KindBook     Kind = "book"
	KindPlaylist Kind = "playlist"
	// KindEpisode is a single track inside a playlist.
	KindEpisode Kind = "episode"
)

// Entry is one featured slot, or a candidate for one.
type Entry struct {
	Kind Kind   `json:"type"`
	ID   string `json:"id"`
	// PlaylistID is set for episodes only.
	PlaylistID string `json:"playlistId,omitempty"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	CoverURL   string `json:"coverUrl,omitempty"`
	Order      int    `json:"featuredOrder"`
}

// Key identifies an entry across kinds. Episodes use playlistId_itemId since
// track ids are only unique within their playlist.
func (entry Entry) Key() string {
	if entry.Kind == KindEpisode {
		return entry.PlaylistID + "_" + entry.ID
	}
	return entry.ID
}

// Draft is the editing state of one staff session.
type Draft struct {
	// Original is the featured set at the time the draft was built.
	Original []Entry `json:"original"`
	// Entries is the edited featured set, in display order.
	Entries    []Entry   `json:"entries"`
	Candidates []Entry   `json:"candidates"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Dirty reports whether the draft differs from its original snapshot.
func (draft *Draft) Dirty() bool {
	if len(draft.Original) != len(draft.Entries) {
		return true
	}
	for index := range draft.Entries {
		if draft.Original[index].Key() != draft.Entries[index].Key() {
			return true
		}
	}
	return false
}

// Change is one featured flag write of a save plan.
type Change struct {
	Entry    Entry `json:"entry"`
	Featured bool  `json:"isFeatured"`
	Order    int   `json:"featuredOrder"`
}

// SaveResult reports a completed save.
type SaveResult struct {
	Applied    int `json:"applied"`
	Featured   int `json:"featured"`
	Unfeatured int `json:"unfeatured"`
}
