// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package featured

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tinytales/internal/platform/constants"
	"github.com/taibuivan/tinytales/internal/platform/sec"
)

func TestDraftKey_HashesSessionID(t *testing.T) {
	key := draftKey("raw-session-cookie-value")

	assert.NotContains(t, key, "raw-session-cookie-value")
	assert.Equal(t, constants.RedisPrefixFeaturedDraft+sec.HashToken("raw-session-cookie-value"), key)
	assert.NotEqual(t, key, draftKey("another-session"))
}
