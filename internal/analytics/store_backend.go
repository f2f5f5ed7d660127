// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/backend"
)

// BackendSource reads /api/analytics/*.
type BackendSource struct {
	client *backend.Client
}

func NewBackendSource(client *backend.Client) *BackendSource {
	return &BackendSource{client: client}
}

func (source *BackendSource) Overview(context context.Context, window Range) (*Overview, error) {
	raw, err := source.fetch(context, "overview", window)
	if err != nil {
		return nil, err
	}

	var overview Overview
	if err := json.Unmarshal(unwrap(raw), &overview); err != nil {
		return nil, apperr.BackendUnavailable(fmt.Errorf("analytics overview: %w", err))
	}
	return &overview, nil
}

func (source *BackendSource) Features(context context.Context, window Range) ([]*FeatureUsage, error) {
	return fetchRows[FeatureUsage](context, source, "features", window)
}

func (source *BackendSource) Leaderboard(context context.Context, window Range) ([]*LeaderboardRow, error) {
	return fetchRows[LeaderboardRow](context, source, "leaderboard", window)
}

func (source *BackendSource) fetch(context context.Context, summary string, window Range) ([]byte, error) {
	query := url.Values{"range": {string(window)}}
	return source.client.DoRaw(context, http.MethodGet, "/api/analytics/"+summary, query, nil)
}

// fetchRows decodes a row summary, which may be a bare array or {data, pagination}.
func fetchRows[T any](context context.Context, source *BackendSource, summary string, window Range) ([]*T, error) {
	raw, err := source.fetch(context, summary, window)
	if err != nil {
		return nil, err
	}

	page, err := backend.DecodePage[*T](raw)
	if err != nil {
		return nil, apperr.BackendUnavailable(fmt.Errorf("analytics %s: %w", summary, err))
	}
	return page.Items, nil
}

// unwrap returns the "data" member of an enveloped object, or raw unchanged.
func unwrap(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || len(envelope.Data) == 0 || envelope.Data[0] != '{' {
		return raw
	}
	return envelope.Data
}
