// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"context"
)

// Catalog reads featured state from the content backend and writes it back.
type Catalog interface {
	// Snapshot returns every featurable item with its current featured flag.
	Snapshot(context context.Context) ([]Candidate, error)
	// Apply writes one change.
	Apply(context context.Context, change Change) error
	// ApplyBatch writes the whole plan in one request.
	ApplyBatch(context context.Context, changes []Change) error
}

// Candidate is a featurable item and its current backend state.
type Candidate struct {
	Entry
	IsFeatured bool
}

// DraftStore keeps one draft per session.
type DraftStore interface {
	// Load returns nil and no error when the session has no draft.
	Load(context context.Context, sessionID string) (*Draft, error)
	Save(context context.Context, sessionID string, draft *Draft) error
	Delete(context context.Context, sessionID string) error
}
