// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package percent computes the whole-number rates shown on analytics screens.
package percent

import "math"

// Of returns part/whole as a rounded percentage, or 0 when whole is not positive.
func Of(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// Clamp bounds a percentage to 0..100 for display.
func Clamp(value int) int {
	return min(max(value, 0), 100)
}
