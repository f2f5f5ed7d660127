// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		canvas.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}

	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, canvas))
	return buffer.Bytes()
}

func TestFitImage(t *testing.T) {
	t.Run("downscales_wide_png", func(t *testing.T) {
		file := fitImage(&File{Name: "cover.png", Content: encodePNG(t, 400, 100)}, 200)

		config, format, err := image.DecodeConfig(bytes.NewReader(file.Content))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 200, config.Width)
		assert.Equal(t, 50, config.Height)
		assert.Equal(t, "cover.png", file.Name)
	})

	t.Run("keeps_narrow_png", func(t *testing.T) {
		original := &File{Name: "cover.png", Content: encodePNG(t, 100, 100)}
		assert.Same(t, original, fitImage(original, 200))
	})

	t.Run("keeps_undecodable_content", func(t *testing.T) {
		original := &File{Name: "cover.png", Content: pngBytes}
		assert.Same(t, original, fitImage(original, 200))
	})

	t.Run("disabled", func(t *testing.T) {
		original := &File{Name: "cover.png", Content: encodePNG(t, 400, 100)}
		assert.Same(t, original, fitImage(original, -1))
	})
}

func TestUpload_DownscalesImages(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		file, _, err := request.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		content, _ := io.ReadAll(file)
		config, _, err := image.DecodeConfig(bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, defaultImageMaxWidth, config.Width)

		_, _ = io.WriteString(writer, `{"url":"https://cdn.example/covers/wide.png"}`)
	})

	file := &File{Name: "wide.png", Content: encodePNG(t, defaultImageMaxWidth+500, 10)}
	_, err := client.Upload(t.Context(), UploadTarget{Kind: AssetImage}, file)
	require.NoError(t, err)
}
