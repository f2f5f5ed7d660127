// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	cases := []struct {
		raw  string
		want Params
	}{
		{"", Params{Page: 1, Limit: DefaultLimit}},
		{"page=3&limit=10", Params{Page: 3, Limit: 10}},
		{"page=-2&limit=0", Params{Page: 1, Limit: DefaultLimit}},
		{"page=abc&limit=9999", Params{Page: 1, Limit: MaxLimit}},
		{"page=368934881474191034&limit=200", Params{Page: MaxPage, Limit: MaxLimit}},
	}

	for _, testCase := range cases {
		query, _ := url.ParseQuery(testCase.raw)
		assert.Equal(t, testCase.want, FromQuery(query), testCase.raw)
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, math.MaxInt, Params{Page: math.MaxInt, Limit: 200}.Offset())
	assert.Equal(t, 0, Params{Page: 4, Limit: 0}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(1, 20, 45)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)

	last := NewMeta(3, 20, 45)
	assert.False(t, last.HasMore)

	empty := NewMeta(1, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasMore)
}
