// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
}

func TestResource_CRUD(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		calls = append(calls, request.Method+" "+request.URL.EscapedPath())

		switch request.Method {
		case http.MethodGet:
			if request.URL.Path == "/api/widgets" {
				_, _ = io.WriteString(writer, `[{"id":"w1","title":"a"}]`)
				return
			}
			_, _ = io.WriteString(writer, `{"id":"w 1","title":"a"}`)
		case http.MethodPost:
			var body widget
			_ = json.NewDecoder(request.Body).Decode(&body)
			body.ID = "w2"
			_ = json.NewEncoder(writer).Encode(body)
		case http.MethodPut:
			writer.WriteHeader(http.StatusNoContent)
		case http.MethodPatch:
			_, _ = io.WriteString(writer, `{"id":"w2","title":"patched"}`)
		case http.MethodDelete:
			writer.WriteHeader(http.StatusNoContent)
		}
	})

	resource := NewResource[widget](client, "/api/widgets")
	ctx := context.Background()

	listed, err := resource.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	fetched, err := resource.Get(ctx, "w 1")
	require.NoError(t, err)
	assert.Equal(t, "w 1", fetched.ID)

	created, err := resource.Create(ctx, &widget{Title: "b"})
	require.NoError(t, err)
	assert.Equal(t, "w2", created.ID)

	// An empty PUT response keeps the sent element.
	replaced, err := resource.Replace(ctx, "w2", &widget{ID: "w2", Title: "c"})
	require.NoError(t, err)
	assert.Equal(t, "c", replaced.Title)

	patched, err := resource.Patch(ctx, "w2", map[string]string{"title": "patched"})
	require.NoError(t, err)
	assert.Equal(t, "patched", patched.Title)

	require.NoError(t, resource.Delete(ctx, "w2"))

	assert.Equal(t, []string{
		"GET /api/widgets",
		"GET /api/widgets/w%201",
		"POST /api/widgets",
		"PUT /api/widgets/w2",
		"PATCH /api/widgets/w2",
		"DELETE /api/widgets/w2",
	}, calls)
}
