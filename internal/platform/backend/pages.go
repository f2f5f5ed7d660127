// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
)

// Page is the normalised shape of one list response.
type Page[T any] struct {
	Items   []T
	HasMore bool
}

// envelope is the paginated response shape: { data: [...], pagination: {...} }.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		HasMore bool `json:"hasMore"`
	} `json:"pagination"`
}

// ErrUnknownShape is returned when a list body is neither an array nor an envelope.
var ErrUnknownShape = errors.New("backend: list response is neither an array nor a {data, pagination} object")

// DecodePage normalises a list response body.
//
//   - A bare JSON array is the whole collection: HasMore is false.
//   - An object yields its "data" array; HasMore comes from pagination.hasMore
//     and is false when pagination is absent.
func DecodePage[T any](raw []byte) (Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Page[T]{Items: []T{}}, nil
	}

	switch trimmed[0] {
	case '[':
		items := []T{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("backend: decode array page: %w", err)
		}
		return Page[T]{Items: items}, nil

	case '{':
		var body envelope
		if err := json.Unmarshal(trimmed, &body); err != nil {
			return Page[T]{}, fmt.Errorf("backend: decode page envelope: %w", err)
		}

		items := []T{}
		data := bytes.TrimSpace(body.Data)
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			if data[0] != '[' {
				return Page[T]{}, ErrUnknownShape
			}
			if err := json.Unmarshal(data, &items); err != nil {
				return Page[T]{}, fmt.Errorf("backend: decode page data: %w", err)
			}
		}

		return Page[T]{
			Items:   items,
			HasMore: body.Pagination != nil && body.Pagination.HasMore,
		}, nil
	}

	return Page[T]{}, ErrUnknownShape
}

// FetchAll follows the backend's pagination and returns the whole collection.
//
// Pages are requested sequentially with page=1,2,... and limit=pageSize (a
// non-positive size uses the client default; values are capped at the server
// limit). The loop ends when a page reports no more results, the response is a
// bare array, or a page comes back empty. Any failure aborts the whole fetch and
// no partial collection is returned.
func FetchAll[T any](ctx context.Context, client *Client, path string, query url.Values, pageSize int) ([]T, error) {
	size := client.pageSize
	if pageSize > 0 {
		size = clampPageSize(pageSize)
	}

	collected := make([]T, 0)
	for pageNumber := 1; ; pageNumber++ {
		pageQuery := cloneQuery(query)
		pageQuery.Set("page", strconv.Itoa(pageNumber))
		pageQuery.Set("limit", strconv.Itoa(size))

		raw, err := client.DoRaw(ctx, http.MethodGet, path, pageQuery, nil)
		if err != nil {
			return nil, err
		}

		page, err := DecodePage[T](raw)
		if err != nil {
			return nil, apperr.BackendUnavailable(fmt.Errorf("%s page %d: %w", path, pageNumber, err))
		}

		collected = append(collected, page.Items...)

		if !page.HasMore || len(page.Items) == 0 {
			return collected, nil
		}
	}
}

// cloneQuery copies query so per-page parameters never leak into the caller's values.
func cloneQuery(query url.Values) url.Values {
	cloned := make(url.Values, len(query)+2)
	for key, values := range query {
		cloned[key] = append([]string(nil), values...)
	}
	return cloned
}
