// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reorder implements the move/add/remove primitives of ordered lists
(series books, playlist tracks, the featured carousel).

All functions return a new slice and never modify their input. Moves swap
adjacent elements only; moving the first element up or the last element down
is a no-op. Position fields are the caller's business and are rewritten with
[Renumber] once the final order is known.
*/
package reorder

import (
	"fmt"
	"slices"
)

// Direction is a single-step move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection validates a direction received from the UI.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case Up, Down:
		return Direction(raw), nil
	}
	return "", fmt.Errorf("reorder: unknown direction %q", raw)
}

// MoveUp swaps item index with its predecessor.
func MoveUp[T any](items []T, index int) []T {
	return swap(items, index, index-1)
}

// MoveDown swaps item index with its successor.
func MoveDown[T any](items []T, index int) []T {
	return swap(items, index, index+1)
}

// Move applies a single-step move in direction.
func Move[T any](items []T, index int, direction Direction) []T {
	if direction == Up {
		return MoveUp(items, index)
	}
	if direction == Down {
		return MoveDown(items, index)
	}
	return slices.Clone(items)
}

// Neighbor returns the index that index would swap with, or -1 when the move is a no-op.
func Neighbor(length, index int, direction Direction) int {
	target := index + 1
	if direction == Up {
		target = index - 1
	}
	if index < 0 || index >= length || target < 0 || target >= length {
		return -1
	}
	return target
}

func swap[T any](items []T, from, to int) []T {
	moved := slices.Clone(items)
	if from < 0 || from >= len(moved) || to < 0 || to >= len(moved) {
		return moved
	}
	moved[from], moved[to] = moved[to], moved[from]
	return moved
}

// IndexFunc returns the position of the first item matching match, or -1.
func IndexFunc[T any](items []T, match func(T) bool) int {
	return slices.IndexFunc(items, match)
}

// RemoveFunc returns items without every element matching match.
func RemoveFunc[T any](items []T, match func(T) bool) []T {
	return slices.DeleteFunc(slices.Clone(items), match)
}

// Append returns items with item added at the end. Its position is len(items).
func Append[T any](items []T, item T) []T {
	return append(slices.Clone(items), item)
}

// Renumber calls set with each element and its position, rewriting order fields.
func Renumber[T any](items []T, set func(item *T, position int)) {
	for position := range items {
		set(&items[position], position)
	}
}
