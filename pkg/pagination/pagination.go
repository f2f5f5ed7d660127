// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides the page/limit contract of portal list screens.
//
// # Overview
//
// The portal fetches whole collections from the backend and windows them locally,
// so these types describe the view the staff member is looking at, not a query
// against storage.
package pagination

import (
	"math"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of rows per screen page if not specified.
	DefaultLimit = 25
	// MaxLimit is the largest screen page the UI may request.
	MaxLimit = 200
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage caps the page number so the offset cannot overflow.
	MaxPage = 1_000_000
)

// Params holds the parsed page and limit of a list screen.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the index of the first row on the page. It saturates at
// math.MaxInt instead of overflowing.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block included in list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NewMeta constructs pagination metadata for a window of total rows.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// FromQuery parses "page" and "limit" from query values.
//
// # Clamping
//
// Invalid or negative values fall back to [DefaultPage] and [DefaultLimit];
// pages above [MaxPage] and limits above [MaxLimit] are capped.
func FromQuery(query url.Values) Params {
	page := intParam(query, "page", DefaultPage)
	limit := intParam(query, "limit", DefaultLimit)

	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}

	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func intParam(query url.Values, key string, fallback int) int {
	raw := query.Get(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
