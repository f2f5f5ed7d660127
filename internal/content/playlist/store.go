package playlist

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type Repository interface {
	ListPlaylists(context context.Context, query url.Values) ([]*Playlist, error)
	GetPlaylist(context context.Context, id string) (*Playlist, error)
	CreatePlaylist(context context.Context, playlist *Playlist) (*Playlist, error)
	UpdatePlaylist(context context.Context, id string, playlist *Playlist) (*Playlist, error)
	PatchPlaylist(context context.Context, id string, patch AssetPatch) (*Playlist, error)
	DeletePlaylist(context context.Context, id string) error
	DeleteTrack(context context.Context, playlistID, trackID string) error
	UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error)
}

// AssetPatch attaches uploaded URLs to a freshly created playlist.
type AssetPatch struct {
	CoverURL string  `json:"coverUrl,omitempty"`
	Items    []Track `json:"items,omitempty"`
}
