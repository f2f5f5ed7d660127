// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []int{2, 4}, Map([]int{1, 2}, func(v int) int { return v * 2 }))
	assert.Nil(t, Map[int, int](nil, func(v int) int { return v }))
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []int{2}, Filter([]int{1, 2, 3}, func(v int) bool { return v%2 == 0 }))
	assert.NotNil(t, Filter([]int{1}, func(int) bool { return false }))
}

func TestSum(t *testing.T) {
	type stat struct{ Revenue float64 }
	assert.Equal(t, 12.5, Sum([]stat{{10}, {2.5}}, func(s stat) float64 { return s.Revenue }))
	assert.Equal(t, 0, Sum([]int(nil), func(v int) int { return v }))
}
