// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/pkg/reorder"
)

func book(id string) Entry {
	return Entry{Kind: KindBook, ID: id, Title: "Book " + id}
}

func keys(entries []Entry) []string {
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.Key())
	}
	return result
}

func TestEntryKey(t *testing.T) {
	assert.Equal(t, "b1", book("b1").Key())
	assert.Equal(t, "p1_t9", Entry{Kind: KindEpisode, ID: "t9", PlaylistID: "p1"}.Key())
}

func TestPlan_UnfeaturesThenFeatures(t *testing.T) {
	changes := Plan([]Entry{book("A"), book("B")}, []Entry{book("B"), book("C")})

	require.Len(t, changes, 3)
	assert.Equal(t, Change{Entry: book("A"), Featured: false, Order: 0}, changes[0])
	assert.Equal(t, Change{Entry: book("B"), Featured: true, Order: 0}, changes[1])
	assert.Equal(t, Change{Entry: book("C"), Featured: true, Order: 1}, changes[2])
}

func TestPlan_EmptyFinalUnfeaturesAll(t *testing.T) {
	changes := Plan([]Entry{book("A"), book("B")}, nil)

	require.Len(t, changes, 2)
	for _, change := range changes {
		assert.False(t, change.Featured)
	}
}

func TestDraftEditing(t *testing.T) {
	draft := &Draft{
		Original:   []Entry{book("A")},
		Entries:    []Entry{book("A")},
		Candidates: []Entry{book("A"), book("B"), book("C")},
	}
	assert.False(t, draft.Dirty())

	require.NoError(t, draft.Add("B"))
	require.NoError(t, draft.Add("C"))
	assert.Equal(t, []string{"A", "B", "C"}, keys(draft.Entries))
	assert.Equal(t, 2, draft.Entries[2].Order)
	assert.True(t, draft.Dirty())

	assert.Equal(t, "CONFLICT", apperr.As(draft.Add("B")).Code)
	assert.Equal(t, "NOT_FOUND", apperr.As(draft.Add("Z")).Code)

	require.NoError(t, draft.Move("C", reorder.Up))
	assert.Equal(t, []string{"A", "C", "B"}, keys(draft.Entries))

	require.NoError(t, draft.Move("A", reorder.Up))
	assert.Equal(t, []string{"A", "C", "B"}, keys(draft.Entries))

	require.NoError(t, draft.Remove("A"))
	assert.Equal(t, []string{"C", "B"}, keys(draft.Entries))
	assert.Equal(t, 0, draft.Entries[0].Order)
	assert.Equal(t, 1, draft.Entries[1].Order)

	assert.Equal(t, "NOT_FOUND", apperr.As(draft.Remove("A")).Code)
}
