// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listview derives the table view of a list screen from a fetched collection.

A screen hands over the full collection and the request's query string and gets
back filtered, sorted and windowed rows plus the column headers the UI renders.
Each header carries the sort the UI should request when it is clicked, so the
toggle rule lives here and not in the browser:

  - clicking the active column flips its direction,
  - clicking any other column selects it, descending.
*/
package listview

import (
	"cmp"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/tinytales/pkg/pagination"
)

// # Sorting

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the active column and direction of a table.
type Sort struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Toggle returns the sort that results from clicking column while current is active.
func Toggle(current Sort, column string) Sort {
	if current.Column == column {
		if current.Direction == Desc {
			return Sort{Column: column, Direction: Asc}
		}
		return Sort{Column: column, Direction: Desc}
	}
	return Sort{Column: column, Direction: Desc}
}

// ParseSort reads "sort" and "dir" from query.
//
// A column outside allowed yields fallback. A missing or unknown direction is
// treated as descending, the direction a freshly selected column starts in.
func ParseSort(query url.Values, allowed []string, fallback Sort) Sort {
	column := query.Get("sort")
	if !slices.Contains(allowed, column) {
		return fallback
	}

	direction := Direction(strings.ToLower(query.Get("dir")))
	if direction != Asc {
		direction = Desc
	}
	return Sort{Column: column, Direction: direction}
}

// Column is one table header.
type Column struct {
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Direction Direction `json:"direction,omitempty"`
	Next      Sort      `json:"next"`
}

// Columns returns header descriptors for names in display order.
func Columns(current Sort, names []string) []Column {
	columns := make([]Column, 0, len(names))
	for _, name := range names {
		column := Column{Name: name, Next: Toggle(current, name)}
		if name == current.Column {
			column.Active = true
			column.Direction = current.Direction
		}
		columns = append(columns, column)
	}
	return columns
}

// Comparator orders two rows ascending (negative when a sorts first).
type Comparator[T any] func(a, b T) int

// By orders rows by an ordered key.
func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// ByFold orders rows by a string key, ignoring case.
func ByFold[T any](key func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}

// ByTime orders rows by a timestamp.
func ByTime[T any](key func(T) time.Time) Comparator[T] {
	return func(a, b T) int { return key(a).Compare(key(b)) }
}

// Apply returns a stably sorted copy of items. An unknown column keeps the input order.
func Apply[T any](items []T, sort Sort, comparators map[string]Comparator[T]) []T {
	sorted := slices.Clone(items)

	compare, ok := comparators[sort.Column]
	if !ok {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b T) int {
		if sort.Direction == Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}

// # Windowing

// Window returns the rows of one screen page and its metadata.
func Window[T any](items []T, params pagination.Params) ([]T, pagination.Meta) {
	meta := pagination.NewMeta(params.Page, params.Limit, len(items))

	start := min(max(params.Offset(), 0), len(items))
	end := start + min(max(params.Limit, 0), len(items)-start)

	return items[start:end], meta
}

// # Filtering

// Filter is the status/type/search filter of a list screen.
type Filter struct {
	Status string
	Type   string
	Search string
}

// ParseFilter reads "status", "type" and "q" from query.
func ParseFilter(query url.Values) Filter {
	return Filter{
		Status: strings.TrimSpace(query.Get("status")),
		Type:   strings.TrimSpace(query.Get("type")),
		Search: strings.TrimSpace(query.Get("q")),
	}
}

// Query returns the backend list parameters for the filter.
func (filter Filter) Query() url.Values {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	return query
}

// Matches reports whether any of fields contains the search term, ignoring case.
// An empty search matches everything.
func (filter Filter) Matches(fields ...string) bool {
	if filter.Search == "" {
		return true
	}

	needle := strings.ToLower(filter.Search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Accepts reports whether value satisfies an exact-match filter value.
func Accepts(want, value string) bool {
	return want == "" || strings.EqualFold(want, value)
}

// # Screen

// Spec describes how one entity's list screen is derived.
type Spec[T any] struct {
	// Columns lists sortable columns in display order.
	Columns     []string
	Comparators map[string]Comparator[T]
	Default     Sort
	// Match decides whether a row survives the filter. Nil keeps every row.
	Match func(row T, filter Filter) bool
}

// View is the derived table returned to the UI.
type View[T any] struct {
	Rows    []T      `json:"rows"`
	Columns []Column `json:"columns"`
	Sort    Sort     `json:"sort"`
}

// Build filters, sorts and windows items according to query.
func Build[T any](items []T, query url.Values, spec Spec[T]) (View[T], pagination.Meta) {
	filter := ParseFilter(query)

	filtered := items
	if spec.Match != nil {
		filtered = make([]T, 0, len(items))
		for _, item := range items {
			if spec.Match(item, filter) {
				filtered = append(filtered, item)
			}
		}
	}

	sort := ParseSort(query, spec.Columns, spec.Default)
	rows, meta := Window(Apply(filtered, sort, spec.Comparators), pagination.FromQuery(query))

	return View[T]{
		Rows:    rows,
		Columns: Columns(sort, spec.Columns),
		Sort:    sort,
	}, meta
}
