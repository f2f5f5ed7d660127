// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import "context"

// Source reads the backend's pre-aggregated summaries.
type Source interface {
	Overview(context context.Context, window Range) (*Overview, error)
	Features(context context.Context, window Range) ([]*FeatureUsage, error)
	Leaderboard(context context.Context, window Range) ([]*LeaderboardRow, error)
}
