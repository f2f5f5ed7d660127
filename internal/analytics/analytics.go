// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package analytics serves the usage screens.

Every figure is pre-aggregated by the backend. The portal only derives ratios
and sums over the fetched rows, e.g. a leaderboard row's engagement rate is
round((likes+favorites)/plays*100), and 0 when there are no plays.
*/
package analytics

import (
	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/pkg/listview"
	"github.com/taibuivan/tinytales/pkg/percent"
)

// Range is the reporting window accepted by every analytics endpoint.
type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	Range90d Range = "90d"
	RangeAll Range = "all"

	DefaultRange = Range30d
)

// ParseRange validates raw. An empty value selects [DefaultRange].
func ParseRange(raw string) (Range, error) {
	switch Range(raw) {
	case "":
		return DefaultRange, nil
	case Range7d, Range30d, Range90d, RangeAll:
		return Range(raw), nil
	default:
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "range",
			Message: "Must be one of: 7d, 30d, 90d, all",
		})
	}
}

// # Overview

type Overview struct {
	TotalUsers       int     `json:"totalUsers"`
	ActiveUsers      int     `json:"activeUsers"`
	NewUsers         int     `json:"newUsers"`
	PremiumUsers     int     `json:"premiumUsers"`
	TotalPlays       int     `json:"totalPlays"`
	TotalReads       int     `json:"totalReads"`
	ListeningMinutes int     `json:"listeningMinutes"`
	Revenue          float64 `json:"revenue"`

	// Derived.
	ActiveRate  int `json:"activeRate"`
	PremiumRate int `json:"premiumRate"`
}

func (overview *Overview) derive() {
	overview.ActiveRate = percent.Of(overview.ActiveUsers, overview.TotalUsers)
	overview.PremiumRate = percent.Of(overview.PremiumUsers, overview.TotalUsers)
}

// # Feature usage

type FeatureUsage struct {
	Feature string `json:"feature"`
	Count   int    `json:"count"`
	Users   int    `json:"users"`

	// Share is this feature's percentage of all uses. Derived.
	Share int `json:"share"`
}

// # Leaderboard

type LeaderboardRow struct {
	ContentID     string `json:"contentId"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	PlayCount     int    `json:"playCount"`
	LikeCount     int    `json:"likeCount"`
	FavoriteCount int    `json:"favoriteCount"`

	// Derived.
	EngagementRate int `json:"engagementRate"`
	// DisplayRate is EngagementRate bounded to 0..100 for progress bars.
	DisplayRate int `json:"displayRate"`
}

// EngagementRate is round((likes+favorites)/plays*100), or 0 without plays.
func EngagementRate(likes, favorites, plays int) int {
	return percent.Of(likes+favorites, plays)
}

func (row *LeaderboardRow) derive() {
	row.EngagementRate = EngagementRate(row.LikeCount, row.FavoriteCount, row.PlayCount)
	row.DisplayRate = percent.Clamp(row.EngagementRate)
}

type LeaderboardTotals struct {
	PlayCount      int `json:"playCount"`
	LikeCount      int `json:"likeCount"`
	FavoriteCount  int `json:"favoriteCount"`
	EngagementRate int `json:"engagementRate"`
}

// Leaderboard is the leaderboard screen: sortable rows plus totals over every row.
type Leaderboard struct {
	listview.View[*LeaderboardRow]
	Range  Range             `json:"range"`
	Totals LeaderboardTotals `json:"totals"`
}

// Dashboard combines the three summaries for one range.
type Dashboard struct {
	Range       Range             `json:"range"`
	Overview    *Overview         `json:"overview"`
	Features    []*FeatureUsage   `json:"features"`
	Leaderboard []*LeaderboardRow `json:"leaderboard"`
	Totals      LeaderboardTotals `json:"totals"`
}

var leaderboardSpec = listview.Spec[*LeaderboardRow]{
	Columns: []string{"title", "type", "playCount", "likeCount", "favoriteCount", "engagementRate"},
	Comparators: map[string]listview.Comparator[*LeaderboardRow]{
		"title":          listview.ByFold(func(r *LeaderboardRow) string { return r.Title }),
		"type":           listview.By(func(r *LeaderboardRow) string { return r.Type }),
		"playCount":      listview.By(func(r *LeaderboardRow) int { return r.PlayCount }),
		"likeCount":      listview.By(func(r *LeaderboardRow) int { return r.LikeCount }),
		"favoriteCount":  listview.By(func(r *LeaderboardRow) int { return r.FavoriteCount }),
		"engagementRate": listview.By(func(r *LeaderboardRow) int { return r.EngagementRate }),
	},
	Default: listview.Sort{Column: "playCount", Direction: listview.Desc},
	Match: func(r *LeaderboardRow, filter listview.Filter) bool {
		return listview.Accepts(filter.Type, r.Type) && filter.Matches(r.Title)
	},
}
