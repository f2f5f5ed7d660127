// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
)

type draft struct {
	Title string `json:"title"`
}

func multipartRequest(t *testing.T, payload string, files map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField(PayloadField, payload))
	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func TestDecodeForm_JSON(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Noah's Ark"}`))
	request.Header.Set("Content-Type", "application/json")

	var target draft
	files, err := DecodeForm(request, 1<<20, &target, "cover")

	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, "Noah's Ark", target.Title)
}

func TestDecodeForm_MultipartNamedFields(t *testing.T) {
	request := multipartRequest(t, `{"title":"Noah's Ark"}`, map[string]string{"cover": "png-bytes", "extra": "ignored"})

	var target draft
	files, err := DecodeForm(request, 1<<20, &target, "cover", "thumbnail")

	require.NoError(t, err)
	assert.Equal(t, "Noah's Ark", target.Title)
	require.Len(t, files, 1)
	assert.Equal(t, []byte("png-bytes"), files["cover"].Content)
	assert.Equal(t, "cover.bin", files["cover"].Name)
}

func TestDecodeForm_MultipartAllFields(t *testing.T) {
	request := multipartRequest(t, `{"title":"Lullabies"}`, map[string]string{"cover": "c", "track_0": "a", "track_1": "b"})

	var target draft
	files, err := DecodeForm(request, 1<<20, &target)

	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, "track_1")
}

func TestDecodeForm_BadPayload(t *testing.T) {
	request := multipartRequest(t, `not json`, nil)

	var target draft
	_, err := DecodeForm(request, 1<<20, &target, "cover")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDecodeForm_TooLarge(t *testing.T) {
	request := multipartRequest(t, `{"title":"Big"}`, map[string]string{"cover": strings.Repeat("x", 4096)})

	var target draft
	_, err := DecodeForm(request, 512, &target, "cover")

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
