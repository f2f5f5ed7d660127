package playlist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/content"
	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/audit"
	"github.com/taibuivan/tinytales/internal/platform/backend"
)

var (
	pngCover = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	mp3Track = []byte("ID3\x03\x00\x00\x00\x00\x00\x00")
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListPlaylists(ctx context.Context, query url.Values) ([]*Playlist, error) {
	args := m.Called(query)
	playlists, _ := args.Get(0).([]*Playlist)
	return playlists, args.Error(1)
}

func (m *mockRepository) GetPlaylist(ctx context.Context, id string) (*Playlist, error) {
	args := m.Called(id)
	playlist, _ := args.Get(0).(*Playlist)
	return playlist, args.Error(1)
}

func (m *mockRepository) CreatePlaylist(ctx context.Context, playlist *Playlist) (*Playlist, error) {
	args := m.Called(playlist)
	created, _ := args.Get(0).(*Playlist)
	return created, args.Error(1)
}

func (m *mockRepository) UpdatePlaylist(ctx context.Context, id string, playlist *Playlist) (*Playlist, error) {
	args := m.Called(id, playlist)
	updated, _ := args.Get(0).(*Playlist)
	return updated, args.Error(1)
}

func (m *mockRepository) PatchPlaylist(ctx context.Context, id string, patch AssetPatch) (*Playlist, error) {
	args := m.Called(id, patch)
	patched, _ := args.Get(0).(*Playlist)
	return patched, args.Error(1)
}

func (m *mockRepository) DeletePlaylist(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockRepository) DeleteTrack(ctx context.Context, playlistID, trackID string) error {
	return m.Called(playlistID, trackID).Error(0)
}

func (m *mockRepository) UploadAsset(ctx context.Context, target backend.UploadTarget, file *backend.File) (string, error) {
	args := m.Called(target, file)
	return args.String(0), args.Error(1)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, audit.Nop{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreatePlaylist_RequiresTracks(t *testing.T) {
	_, _, err := newTestService(new(mockRepository)).CreatePlaylist(context.Background(), &Playlist{Title: "Bedtime"}, nil)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, FieldItems, appErr.Details[0].Field)
}

func TestCreatePlaylist_TrackNeedsAudio(t *testing.T) {
	input := &Playlist{Title: "Bedtime", Items: []Track{{Title: "Lullaby"}}}
	_, _, err := newTestService(new(mockRepository)).CreatePlaylist(context.Background(), input, nil)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "items[0].audio", appErr.Details[0].Field)
}

func TestCreatePlaylist_UploadsAndPatches(t *testing.T) {
	cover := &backend.File{Name: "cover.png", Content: pngCover}
	first := &backend.File{Name: "one.mp3", Content: mp3Track}
	second := &backend.File{Name: "two.mp3", Content: mp3Track}

	repo := new(mockRepository)
	repo.On("CreatePlaylist", mock.MatchedBy(func(p *Playlist) bool {
		return p.CoverURL == "" && p.Items[0].AudioURL == "" && p.Items[1].Order == 1
	})).Return(&Playlist{ID: "p1", Title: "Bedtime", Items: []Track{
		{ID: "t2", Title: "Two", Order: 1},
		{ID: "t1", Title: "One", Order: 0},
	}}, nil).Once()

	repo.On("UploadAsset", backend.UploadTarget{Kind: backend.AssetImage, OwnerParam: "playlistId", OwnerID: "p1", AssetType: "cover"}, cover).
		Return("https://cdn/p1.png", nil).Once()
	repo.On("UploadAsset", backend.UploadTarget{Kind: backend.AssetAudio, OwnerParam: "playlistId", OwnerID: "p1", AssetType: "track"}, first).
		Return("https://cdn/t1.mp3", nil).Once()
	repo.On("UploadAsset", backend.UploadTarget{Kind: backend.AssetAudio, OwnerParam: "playlistId", OwnerID: "p1", AssetType: "track"}, second).
		Return("", errors.New("storage offline")).Once()

	repo.On("PatchPlaylist", "p1", AssetPatch{
		CoverURL: "https://cdn/p1.png",
		Items: []Track{
			{ID: "t1", Title: "One", Order: 0, AudioURL: "https://cdn/t1.mp3"},
			{ID: "t2", Title: "Two", Order: 1},
		},
	}).Return(&Playlist{ID: "p1"}, nil).Once()

	input := &Playlist{Title: "Bedtime", Items: []Track{{Title: "One"}, {Title: "Two"}}}
	files := map[string]*backend.File{FieldCover: cover, TrackField(0): first, TrackField(1): second}

	created, warnings, err := newTestService(repo).CreatePlaylist(context.Background(), input, files)
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, []string{content.UploadWarning("Playlist", `audio of track "Two"`)}, warnings)
	repo.AssertExpectations(t)
}

func TestCreatePlaylist_NoUploadsNoPatch(t *testing.T) {
	repo := new(mockRepository)
	repo.On("CreatePlaylist", mock.Anything).Return(&Playlist{ID: "p1"}, nil).Once()

	input := &Playlist{Title: "Radio mix", Items: []Track{{Title: "One", AudioURL: "https://cdn/1.mp3"}}}
	_, warnings, err := newTestService(repo).CreatePlaylist(context.Background(), input, nil)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	repo.AssertNotCalled(t, "PatchPlaylist", mock.Anything, mock.Anything)
}

func TestMoveTrack(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetPlaylist", "p1").Return(&Playlist{ID: "p1", Items: []Track{
		{ID: "c", Order: 2}, {ID: "a", Order: 0}, {ID: "b", Order: 1},
	}}, nil).Once()
	repo.On("UpdatePlaylist", "p1", mock.MatchedBy(func(p *Playlist) bool {
		return assert.Equal(t, []Track{{ID: "a", Order: 0}, {ID: "c", Order: 1}, {ID: "b", Order: 2}}, p.Items)
	})).Return(&Playlist{ID: "p1"}, nil).Once()

	_, err := newTestService(repo).MoveTrack(context.Background(), "p1", content.MoveInput{ItemID: "b", Direction: "down"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMoveTrack_LastDownIsNoop(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetPlaylist", "p1").Return(&Playlist{ID: "p1", Items: []Track{{ID: "a", Order: 0}, {ID: "b", Order: 1}}}, nil).Once()
	repo.On("UpdatePlaylist", "p1", mock.MatchedBy(func(p *Playlist) bool {
		return p.Items[0].ID == "a" && p.Items[1].ID == "b"
	})).Return(&Playlist{ID: "p1"}, nil).Once()

	_, err := newTestService(repo).MoveTrack(context.Background(), "p1", content.MoveInput{ItemID: "b", Direction: "down"})
	require.NoError(t, err)
}

func TestCreatePlaylist_TrackNotAudioIsRejected(t *testing.T) {
	repo := new(mockRepository)

	input := &Playlist{Title: "Bedtime", Items: []Track{{Title: "One"}, {Title: "Two"}}}
	files := map[string]*backend.File{
		TrackField(0): {Name: "one.mp3", Content: mp3Track},
		TrackField(1): {Name: "two.mp3", Content: pngCover},
	}

	_, _, err := newTestService(repo).CreatePlaylist(context.Background(), input, files)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Equal(t, TrackField(1), appErr.Details[0].Field)
	repo.AssertNotCalled(t, "CreatePlaylist", mock.Anything)
}

func TestUpdatePlaylist_UploadFailureAborts(t *testing.T) {
	repo := new(mockRepository)
	repo.On("UploadAsset", mock.Anything, mock.Anything).Return("", apperr.BackendUnavailable(errors.New("dial"))).Once()

	input := &Playlist{Title: "Bedtime", Items: []Track{{Title: "One"}}}
	files := map[string]*backend.File{TrackField(0): {Name: "one.mp3", Content: mp3Track}}

	_, err := newTestService(repo).UpdatePlaylist(context.Background(), "p1", input, files)
	assert.Equal(t, "BACKEND_UNAVAILABLE", apperr.As(err).Code)
	repo.AssertNotCalled(t, "UpdatePlaylist", mock.Anything, mock.Anything)
}

func TestDeleteTrack(t *testing.T) {
	repo := new(mockRepository)
	repo.On("DeleteTrack", "p1", "t1").Return(nil).Once()

	require.NoError(t, newTestService(repo).DeleteTrack(context.Background(), "p1", "t1"))
	repo.AssertExpectations(t)
}
