package radio

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type Repository interface {
	ListTracks(context context.Context, query url.Values) ([]*Track, error)
	GetTrack(context context.Context, id string) (*Track, error)
	CreateTrack(context context.Context, track *Track) (*Track, error)
	UpdateTrack(context context.Context, id string, track *Track) (*Track, error)
	PatchTrack(context context.Context, id string, fields map[string]any) (*Track, error)
	DeleteTrack(context context.Context, id string) error

	ListSegments(context context.Context) ([]*Segment, error)
	GetSegment(context context.Context, id string) (*Segment, error)
	CreateSegment(context context.Context, segment *Segment) (*Segment, error)
	UpdateSegment(context context.Context, id string, segment *Segment) (*Segment, error)
	DeleteSegment(context context.Context, id string) error

	UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error)
}
