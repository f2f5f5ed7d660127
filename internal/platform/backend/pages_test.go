// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
)

type item struct {
	ID int `json:"id"`
}

func TestDecodePage(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		page, err := DecodePage[item]([]byte(`[{"id":1},{"id":2}]`))
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.False(t, page.HasMore)
	})

	t.Run("envelope with more", func(t *testing.T) {
		page, err := DecodePage[item]([]byte(`{"data":[{"id":1}],"pagination":{"hasMore":true}}`))
		require.NoError(t, err)
		assert.Equal(t, []item{{ID: 1}}, page.Items)
		assert.True(t, page.HasMore)
	})

	t.Run("envelope without pagination", func(t *testing.T) {
		page, err := DecodePage[item]([]byte(`{"data":[{"id":3}]}`))
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.False(t, page.HasMore)
	})

	t.Run("null data", func(t *testing.T) {
		page, err := DecodePage[item]([]byte(`{"data":null}`))
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.NotNil(t, page.Items)
	})

	t.Run("empty body", func(t *testing.T) {
		page, err := DecodePage[item](nil)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("unknown shape", func(t *testing.T) {
		_, err := DecodePage[item]([]byte(`"hello"`))
		assert.ErrorIs(t, err, ErrUnknownShape)

		_, err = DecodePage[item]([]byte(`{"data":{"id":1}}`))
		assert.ErrorIs(t, err, ErrUnknownShape)
	})
}

// pagedServer serves total items in pages and records every requested page.
func pagedServer(t *testing.T, total int, requested *[]string) *Client {
	return newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		*requested = append(*requested, query.Get("page")+"/"+query.Get("limit"))

		page, _ := strconv.Atoi(query.Get("page"))
		limit, _ := strconv.Atoi(query.Get("limit"))

		start := (page - 1) * limit
		end := min(start+limit, total)

		fmt.Fprint(writer, `{"data":[`)
		for index := start; index < end; index++ {
			if index > start {
				fmt.Fprint(writer, ",")
			}
			fmt.Fprintf(writer, `{"id":%d}`, index)
		}
		fmt.Fprintf(writer, `],"pagination":{"hasMore":%t}}`, end < total)
	})
}

func TestFetchAll_FollowsPages(t *testing.T) {
	var requested []string
	client := pagedServer(t, 250, &requested)

	items, err := FetchAll[item](context.Background(), client, "/api/books", nil, 100)
	require.NoError(t, err)

	assert.Len(t, items, 250)
	assert.Equal(t, 0, items[0].ID)
	assert.Equal(t, 249, items[249].ID)
	assert.Equal(t, []string{"1/100", "2/100", "3/100"}, requested)
}

func TestFetchAll_ClampsPageSize(t *testing.T) {
	var requested []string
	client := pagedServer(t, 10, &requested)

	_, err := FetchAll[item](context.Background(), client, "/api/books", nil, 500)
	require.NoError(t, err)
	assert.Equal(t, []string{"1/100"}, requested)
}

func TestFetchAll_KeepsCallerQuery(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "en", request.URL.Query().Get("language"))
		fmt.Fprint(writer, `[{"id":1}]`)
	})

	query := url.Values{"language": {"en"}}
	items, err := FetchAll[item](context.Background(), client, "/api/books", query, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Empty(t, query.Get("page"))
}

func TestFetchAll_StopsOnEmptyPage(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		fmt.Fprint(writer, `{"data":[],"pagination":{"hasMore":true}}`)
	})

	items, err := FetchAll[item](context.Background(), client, "/api/books", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchAll_AbortsOnFailure(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("page") == "2" {
			writer.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(writer, `{"message":"boom"}`)
			return
		}
		fmt.Fprint(writer, `{"data":[{"id":1}],"pagination":{"hasMore":true}}`)
	})

	items, err := FetchAll[item](context.Background(), client, "/api/books", nil, 1)
	assert.Nil(t, items)
	assert.Equal(t, "BACKEND_ERROR", apperr.As(err).Code)
}
