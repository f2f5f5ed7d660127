// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"slices"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/pkg/reorder"
)

// Add appends the candidate with key to the end of the featured set.
func (draft *Draft) Add(key string) error {
	if draft.index(key) >= 0 {
		return apperr.Conflict("This item is already featured")
	}

	position := slices.IndexFunc(draft.Candidates, func(entry Entry) bool { return entry.Key() == key })
	if position < 0 {
		return apperr.NotFound("Featured candidate")
	}

	draft.Entries = reorder.Append(draft.Entries, draft.Candidates[position])
	draft.renumber()
	return nil
}

// Remove drops the entry with key from the featured set.
func (draft *Draft) Remove(key string) error {
	if draft.index(key) < 0 {
		return apperr.NotFound("Featured item")
	}

	draft.Entries = reorder.RemoveFunc(draft.Entries, func(entry Entry) bool { return entry.Key() == key })
	draft.renumber()
	return nil
}

// Move swaps the entry with key and its neighbour. Moves past either end are no-ops.
func (draft *Draft) Move(key string, direction reorder.Direction) error {
	index := draft.index(key)
	if index < 0 {
		return apperr.NotFound("Featured item")
	}

	draft.Entries = reorder.Move(draft.Entries, index, direction)
	draft.renumber()
	return nil
}

func (draft *Draft) index(key string) int {
	return reorder.IndexFunc(draft.Entries, func(entry Entry) bool { return entry.Key() == key })
}

func (draft *Draft) renumber() {
	reorder.Renumber(draft.Entries, func(entry *Entry, position int) { entry.Order = position })
}

// Plan lists the writes that turn original into final.
//
// Every original entry missing from final is un-featured first, then each final
// entry is featured with its index as order. Entries present in both are
// rewritten so their order always matches the new position.
func Plan(original, final []Entry) []Change {
	kept := make(map[string]struct{}, len(final))
	for _, entry := range final {
		kept[entry.Key()] = struct{}{}
	}

	changes := make([]Change, 0, len(original)+len(final))
	for _, entry := range original {
		if _, ok := kept[entry.Key()]; !ok {
			changes = append(changes, Change{Entry: entry, Featured: false, Order: 0})
		}
	}
	for index, entry := range final {
		changes = append(changes, Change{Entry: entry, Featured: true, Order: index})
	}
	return changes
}
