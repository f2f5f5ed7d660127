// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/backend"
	"github.com/taibuivan/tinytales/internal/platform/validate"
	"github.com/taibuivan/tinytales/pkg/reorder"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) UploadAsset(ctx context.Context, target backend.UploadTarget, file *backend.File) (string, error) {
	args := m.Called(target, file)
	return args.String(0), args.Error(1)
}

func TestStatus_OrDraft(t *testing.T) {
	assert.Equal(t, StatusDraft, Status("").OrDraft())
	assert.Equal(t, StatusPublished, StatusPublished.OrDraft())
}

func TestMoveInput_Parse(t *testing.T) {
	direction, err := MoveInput{ItemID: "x", Direction: "down"}.Parse(true)
	require.NoError(t, err)
	assert.Equal(t, reorder.Down, direction)

	_, err = MoveInput{Direction: "down"}.Parse(true)
	assert.Error(t, err)

	_, err = MoveInput{Direction: "down"}.Parse(false)
	assert.NoError(t, err)

	_, err = MoveInput{ItemID: "x", Direction: "left"}.Parse(true)
	assert.Error(t, err)
}

func TestUploadAssets(t *testing.T) {
	video := &backend.File{Name: "lesson.mp4", Content: []byte("v")}
	thumbnail := &backend.File{Name: "thumb.png", Content: []byte("t")}

	uploader := new(mockUploader)
	uploader.On("UploadAsset", backend.UploadTarget{Kind: backend.AssetVideo, OwnerParam: "lessonId", OwnerID: "l1", AssetType: "video"}, video).
		Return("", errors.New("timeout")).Once()
	uploader.On("UploadAsset", backend.UploadTarget{Kind: backend.AssetImage, OwnerParam: "lessonId", OwnerID: "l1", AssetType: "thumbnail"}, thumbnail).
		Return("https://cdn/t.png", nil).Once()

	assets := []Asset{
		{Field: "video", Kind: backend.AssetVideo, Type: "video", Label: "video"},
		{Field: "thumbnail", Kind: backend.AssetImage, Type: "thumbnail", Label: "thumbnail"},
		{Field: "poster", Kind: backend.AssetImage, Type: "poster", Label: "poster"},
	}
	files := map[string]*backend.File{"video": video, "thumbnail": thumbnail}

	urls, warnings := UploadAssets(context.Background(), uploader, Owner{Entity: "Lesson", Param: "lessonId", ID: "l1"}, assets, files)

	assert.Equal(t, map[string]string{"thumbnail": "https://cdn/t.png"}, urls)
	assert.Equal(t, []string{"Lesson was saved but the video upload failed; retry from the edit screen"}, warnings)
	uploader.AssertExpectations(t)
}

func TestCheckFiles(t *testing.T) {
	assets := []Asset{
		{Field: "cover", Kind: backend.AssetImage, Type: "cover", Label: "cover"},
		{Field: "audio", Kind: backend.AssetAudio, Type: "track", Label: "audio"},
		{Field: "video", Kind: backend.AssetVideo, Type: "video", Label: "video"},
	}
	files := map[string]*backend.File{
		"cover": {Name: "ark.png", Content: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")},
		"audio": {Name: "song.mp3", Content: []byte("just some words")},
	}

	err := CheckFiles(&validate.Validator{}, assets, files).Err()

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "audio", appErr.Details[0].Field)

	assert.NoError(t, CheckFiles(&validate.Validator{}, assets, nil).Err())
}
