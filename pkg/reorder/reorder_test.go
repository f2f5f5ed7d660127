// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove_Boundaries(t *testing.T) {
	items := []string{"a", "b", "c"}

	assert.Equal(t, items, MoveUp(items, 0), "first item up is a no-op")
	assert.Equal(t, items, MoveDown(items, 2), "last item down is a no-op")
	assert.Equal(t, items, MoveUp(items, 7), "out of range is a no-op")
	assert.Equal(t, items, MoveDown(items, -1), "negative index is a no-op")
}

func TestMove_SwapsNeighbour(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	assert.Equal(t, []string{"a", "c", "b", "d"}, MoveUp(items, 2))
	assert.Equal(t, []string{"a", "c", "b", "d"}, MoveDown(items, 1))
	assert.Equal(t, []string{"b", "a", "c", "d"}, Move(items, 1, Up))
	assert.Equal(t, []string{"a", "b", "d", "c"}, Move(items, 2, Down))

	assert.Equal(t, []string{"a", "b", "c", "d"}, items, "input is untouched")
}

func TestNeighbor(t *testing.T) {
	assert.Equal(t, -1, Neighbor(3, 0, Up))
	assert.Equal(t, -1, Neighbor(3, 2, Down))
	assert.Equal(t, 1, Neighbor(3, 2, Up))
	assert.Equal(t, 2, Neighbor(3, 1, Down))
	assert.Equal(t, -1, Neighbor(0, 0, Down))
}

func TestParseDirection(t *testing.T) {
	direction, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, Up, direction)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestAppendRemoveRenumber(t *testing.T) {
	type entry struct {
		Key   string
		Order int
	}

	items := []entry{{Key: "a"}, {Key: "b"}}
	items = Append(items, entry{Key: "c", Order: len(items)})
	assert.Equal(t, 2, items[2].Order)

	items = RemoveFunc(items, func(e entry) bool { return e.Key == "a" })
	require.Len(t, items, 2)
	assert.Equal(t, 0, IndexFunc(items, func(e entry) bool { return e.Key == "b" }))
	assert.Equal(t, -1, IndexFunc(items, func(e entry) bool { return e.Key == "a" }))

	Renumber(items, func(e *entry, position int) { e.Order = position })
	assert.Equal(t, []entry{{Key: "b", Order: 0}, {Key: "c", Order: 1}}, items)
}
