package playlist

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

// BackendRepository reads and writes playlists through /api/playlists.
type BackendRepository struct {
	client    *backend.Client
	playlists *backend.Resource[Playlist]
}

func NewBackendRepository(client *backend.Client) *BackendRepository {
	return &BackendRepository{
		client:    client,
		playlists: backend.NewResource[Playlist](client, "/api/playlists"),
	}
}

func (repository *BackendRepository) ListPlaylists(context context.Context, query url.Values) ([]*Playlist, error) {
	return repository.playlists.List(context, query)
}

func (repository *BackendRepository) GetPlaylist(context context.Context, id string) (*Playlist, error) {
	return repository.playlists.Get(context, id)
}

func (repository *BackendRepository) CreatePlaylist(context context.Context, playlist *Playlist) (*Playlist, error) {
	return repository.playlists.Create(context, playlist)
}

func (repository *BackendRepository) UpdatePlaylist(context context.Context, id string, playlist *Playlist) (*Playlist, error) {
	return repository.playlists.Replace(context, id, playlist)
}

func (repository *BackendRepository) PatchPlaylist(context context.Context, id string, patch AssetPatch) (*Playlist, error) {
	return repository.playlists.Patch(context, id, patch)
}

func (repository *BackendRepository) DeletePlaylist(context context.Context, id string) error {
	return repository.playlists.Delete(context, id)
}

func (repository *BackendRepository) DeleteTrack(context context.Context, playlistID, trackID string) error {
	return repository.client.Delete(context, repository.playlists.ItemPath(playlistID)+"/items/"+url.PathEscape(trackID))
}

func (repository *BackendRepository) UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error) {
	return repository.client.Upload(context, target, file)
}
