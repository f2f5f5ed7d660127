package influencer

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type BackendRepository struct {
	influencers *backend.Resource[Influencer]
}

func NewBackendRepository(client *backend.Client) *BackendRepository {
	return &BackendRepository{influencers: backend.NewResource[Influencer](client, "/api/influencers")}
}

func (repository *BackendRepository) ListInfluencers(context context.Context, query url.Values) ([]*Influencer, error) {
	return repository.influencers.List(context, query)
}

func (repository *BackendRepository) GetInfluencer(context context.Context, id string) (*Influencer, error) {
	return repository.influencers.Get(context, id)
}

func (repository *BackendRepository) CreateInfluencer(context context.Context, influencer *Influencer) (*Influencer, error) {
	return repository.influencers.Create(context, influencer)
}

func (repository *BackendRepository) UpdateInfluencer(context context.Context, id string, influencer *Influencer) (*Influencer, error) {
	return repository.influencers.Replace(context, id, influencer)
}

func (repository *BackendRepository) SetActive(context context.Context, id string, active bool) (*Influencer, error) {
	return repository.influencers.Patch(context, id, map[string]bool{"isActive": active})
}

func (repository *BackendRepository) DeleteInfluencer(context context.Context, id string) error {
	return repository.influencers.Delete(context, id)
}
