package radio

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type BackendRepository struct {
	client   *backend.Client
	tracks   *backend.Resource[Track]
	segments *backend.Resource[Segment]
}

func NewBackendRepository(client *backend.Client) *BackendRepository {
	return &BackendRepository{
		client:   client,
		tracks:   backend.NewResource[Track](client, "/api/radio/tracks"),
		segments: backend.NewResource[Segment](client, "/api/radio/segments"),
	}
}

// # Tracks

func (repository *BackendRepository) ListTracks(context context.Context, query url.Values) ([]*Track, error) {
	return repository.tracks.List(context, query)
}

func (repository *BackendRepository) GetTrack(context context.Context, id string) (*Track, error) {
	return repository.tracks.Get(context, id)
}

func (repository *BackendRepository) CreateTrack(context context.Context, track *Track) (*Track, error) {
	return repository.tracks.Create(context, track)
}

func (repository *BackendRepository) UpdateTrack(context context.Context, id string, track *Track) (*Track, error) {
	return repository.tracks.Replace(context, id, track)
}

func (repository *BackendRepository) PatchTrack(context context.Context, id string, fields map[string]any) (*Track, error) {
	return repository.tracks.Patch(context, id, fields)
}

func (repository *BackendRepository) DeleteTrack(context context.Context, id string) error {
	return repository.tracks.Delete(context, id)
}

// # Segments

func (repository *BackendRepository) ListSegments(context context.Context) ([]*Segment, error) {
	return repository.segments.List(context, nil)
}

func (repository *BackendRepository) GetSegment(context context.Context, id string) (*Segment, error) {
	return repository.segments.Get(context, id)
}

func (repository *BackendRepository) CreateSegment(context context.Context, segment *Segment) (*Segment, error) {
	return repository.segments.Create(context, segment)
}

func (repository *BackendRepository) UpdateSegment(context context.Context, id string, segment *Segment) (*Segment, error) {
	return repository.segments.Replace(context, id, segment)
}

func (repository *BackendRepository) DeleteSegment(context context.Context, id string) error {
	return repository.segments.Delete(context, id)
}

func (repository *BackendRepository) UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error) {
	return repository.client.Upload(context, target, file)
}
