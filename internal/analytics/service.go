// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/tinytales/pkg/listview"
	"github.com/taibuivan/tinytales/pkg/pagination"
	"github.com/taibuivan/tinytales/pkg/percent"
	"github.com/taibuivan/tinytales/pkg/slice"
)

type Service struct {
	source Source
	logger *slog.Logger
}

func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{source: source, logger: logger}
}

func (service *Service) Overview(context context.Context, window Range) (*Overview, error) {
	overview, err := service.source.Overview(context, window)
	if err != nil {
		return nil, err
	}
	overview.derive()
	return overview, nil
}

func (service *Service) Features(context context.Context, window Range) ([]*FeatureUsage, error) {
	features, err := service.source.Features(context, window)
	if err != nil {
		return nil, err
	}

	total := slice.Sum(features, func(feature *FeatureUsage) int { return feature.Count })
	for _, feature := range features {
		feature.Share = percent.Of(feature.Count, total)
	}
	return features, nil
}

// Leaderboard returns the sortable leaderboard. Totals cover every row that
// passes the filter.
func (service *Service) Leaderboard(context context.Context, window Range, query url.Values) (Leaderboard, pagination.Meta, error) {
	rows, err := service.leaderboardRows(context, window)
	if err != nil {
		return Leaderboard{}, pagination.Meta{}, err
	}

	filter := listview.ParseFilter(query)
	matched := slice.Filter(rows, func(row *LeaderboardRow) bool { return leaderboardSpec.Match(row, filter) })

	view, meta := listview.Build(rows, query, leaderboardSpec)
	return Leaderboard{View: view, Range: window, Totals: totals(matched)}, meta, nil
}

// Dashboard fetches the three summaries concurrently. Any failure fails the whole
// dashboard and no partial data is returned.
func (service *Service) Dashboard(context context.Context, window Range) (*Dashboard, error) {
	dashboard := &Dashboard{Range: window}

	group, groupCtx := errgroup.WithContext(context)
	group.Go(func() error {
		overview, err := service.Overview(groupCtx, window)
		dashboard.Overview = overview
		return err
	})
	group.Go(func() error {
		features, err := service.Features(groupCtx, window)
		dashboard.Features = features
		return err
	})
	group.Go(func() error {
		rows, err := service.leaderboardRows(groupCtx, window)
		dashboard.Leaderboard = rows
		return err
	})

	if err := group.Wait(); err != nil {
		service.logger.Warn("analytics_dashboard_failed", slog.String("range", string(window)), slog.Any("error", err))
		return nil, err
	}

	dashboard.Totals = totals(dashboard.Leaderboard)
	return dashboard, nil
}

func (service *Service) leaderboardRows(context context.Context, window Range) ([]*LeaderboardRow, error) {
	rows, err := service.source.Leaderboard(context, window)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.derive()
	}
	return rows, nil
}

func totals(rows []*LeaderboardRow) LeaderboardTotals {
	result := LeaderboardTotals{
		PlayCount:     slice.Sum(rows, func(row *LeaderboardRow) int { return row.PlayCount }),
		LikeCount:     slice.Sum(rows, func(row *LeaderboardRow) int { return row.LikeCount }),
		FavoriteCount: slice.Sum(rows, func(row *LeaderboardRow) int { return row.FavoriteCount }),
	}
	result.EngagementRate = EngagementRate(result.LikeCount, result.FavoriteCount, result.PlayCount)
	return result
}
