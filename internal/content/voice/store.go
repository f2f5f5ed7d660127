package voice

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type Repository interface {
	ListVoices(context context.Context, query url.Values) ([]*Voice, error)
	ListProviderVoices(context context.Context) ([]*ProviderVoice, error)
	GetVoice(context context.Context, id string) (*Voice, error)
	CreateVoice(context context.Context, voice *Voice) (*Voice, error)
	UpdateVoice(context context.Context, id string, voice *Voice) (*Voice, error)
	PatchVoice(context context.Context, id string, fields map[string]any) (*Voice, error)
	DeleteVoice(context context.Context, id string) error
	UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error)
}
