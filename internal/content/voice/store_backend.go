package voice

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type BackendRepository struct {
	client *backend.Client
	voices *backend.Resource[Voice]
}

func NewBackendRepository(client *backend.Client) *BackendRepository {
	return &BackendRepository{
		client: client,
		voices: backend.NewResource[Voice](client, "/api/voices"),
	}
}

func (repository *BackendRepository) ListVoices(context context.Context, query url.Values) ([]*Voice, error) {
	return repository.voices.List(context, query)
}

// ListProviderVoices returns the provider catalogue. The endpoint is not paginated
// but may answer in either list shape.
func (repository *BackendRepository) ListProviderVoices(context context.Context) ([]*ProviderVoice, error) {
	raw, err := repository.client.DoRaw(context, http.MethodGet, repository.voices.Path()+"/available", nil, nil)
	if err != nil {
		return nil, err
	}

	page, err := backend.DecodePage[*ProviderVoice](raw)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (repository *BackendRepository) GetVoice(context context.Context, id string) (*Voice, error) {
	return repository.voices.Get(context, id)
}

func (repository *BackendRepository) CreateVoice(context context.Context, voice *Voice) (*Voice, error) {
	return repository.voices.Create(context, voice)
}

func (repository *BackendRepository) UpdateVoice(context context.Context, id string, voice *Voice) (*Voice, error) {
	return repository.voices.Replace(context, id, voice)
}

func (repository *BackendRepository) PatchVoice(context context.Context, id string, fields map[string]any) (*Voice, error) {
	return repository.voices.Patch(context, id, fields)
}

func (repository *BackendRepository) DeleteVoice(context context.Context, id string) error {
	return repository.voices.Delete(context, id)
}

func (repository *BackendRepository) UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error) {
	return repository.client.Upload(context, target, file)
}
