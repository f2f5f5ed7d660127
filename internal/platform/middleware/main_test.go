// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"testing"

	"go.uber.org/goleak"
)

// The rate limiter sweep must stop with its context.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
