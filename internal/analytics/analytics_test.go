// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/backend"
)

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 30, EngagementRate(10, 5, 50))
	assert.Equal(t, 0, EngagementRate(10, 5, 0))
}

func TestLeaderboardRow_DisplayRateClamped(t *testing.T) {
	row := &LeaderboardRow{PlayCount: 10, LikeCount: 12, FavoriteCount: 8}
	row.derive()

	assert.Equal(t, 200, row.EngagementRate)
	assert.Equal(t, 100, row.DisplayRate)
}

func TestParseRange(t *testing.T) {
	window, err := ParseRange("")
	require.NoError(t, err)
	assert.Equal(t, Range30d, window)

	for _, raw := range []string{"7d", "30d", "90d", "all"} {
		window, err := ParseRange(raw)
		require.NoError(t, err)
		assert.Equal(t, Range(raw), window)
	}

	_, err = ParseRange("1y")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := backend.NewClient(server.URL, backend.Options{RPS: 1000, Burst: 1000})
	require.NoError(t, err)
	return NewService(NewBackendSource(client), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func analyticsBackend(t *testing.T, failing string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "7d", request.URL.Query().Get("range"))

		if request.URL.Path == failing {
			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(writer, `{"error":"warehouse timeout"}`)
			return
		}

		switch request.URL.Path {
		case "/api/analytics/overview":
			_, _ = io.WriteString(writer, `{"data":{"totalUsers":200,"activeUsers":50,"premiumUsers":20}}`)
		case "/api/analytics/features":
			_, _ = io.WriteString(writer, `[{"feature":"read","count":75},{"feature":"listen","count":25}]`)
		case "/api/analytics/leaderboard":
			_, _ = io.WriteString(writer, `{"data":[
				{"contentId":"b1","title":"Noah's Ark","type":"book","playCount":50,"likeCount":10,"favoriteCount":5},
				{"contentId":"p1","title":"Lullabies","type":"playlist","playCount":0,"likeCount":4,"favoriteCount":0},
				{"contentId":"b2","title":"Moon","type":"book","playCount":150,"likeCount":15,"favoriteCount":0}
			],"pagination":{"hasMore":false}}`)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestDashboard_JoinsSummaries(t *testing.T) {
	service := newTestService(t, analyticsBackend(t, ""))

	dashboard, err := service.Dashboard(context.Background(), Range7d)
	require.NoError(t, err)

	assert.Equal(t, 25, dashboard.Overview.ActiveRate)
	assert.Equal(t, 10, dashboard.Overview.PremiumRate)
	assert.Equal(t, 75, dashboard.Features[0].Share)
	require.Len(t, dashboard.Leaderboard, 3)
	assert.Equal(t, 30, dashboard.Leaderboard[0].EngagementRate)
	assert.Equal(t, 0, dashboard.Leaderboard[1].EngagementRate)
	assert.Equal(t, LeaderboardTotals{PlayCount: 200, LikeCount: 29, FavoriteCount: 5, EngagementRate: 17}, dashboard.Totals)
}

func TestDashboard_AnyFailureFails(t *testing.T) {
	service := newTestService(t, analyticsBackend(t, "/api/analytics/features"))

	dashboard, err := service.Dashboard(context.Background(), Range7d)
	assert.Nil(t, dashboard)
	assert.Equal(t, "BACKEND_ERROR", apperr.As(err).Code)
}

func TestLeaderboard_SortAndFilter(t *testing.T) {
	service := newTestService(t, analyticsBackend(t, ""))

	leaderboard, meta, err := service.Leaderboard(context.Background(), Range7d, url.Values{"type": {"book"}})
	require.NoError(t, err)

	require.Len(t, leaderboard.Rows, 2)
	assert.Equal(t, "b2", leaderboard.Rows[0].ContentID)
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 200, leaderboard.Totals.PlayCount)
}

func TestHandler_RejectsUnknownRange(t *testing.T) {
	service := newTestService(t, func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected backend call %s", request.URL.Path)
	})

	router := chi.NewRouter()
	NewHandler(service).RegisterRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/dashboard?range=1y", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
}
