package category

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type BackendRepository struct {
	categories *backend.Resource[Category]
}

func NewBackendRepository(client *backend.Client) *BackendRepository {
	return &BackendRepository{categories: backend.NewResource[Category](client, "/api/categories")}
}

func (repository *BackendRepository) ListCategories(context context.Context, query url.Values) ([]*Category, error) {
	return repository.categories.List(context, query)
}

func (repository *BackendRepository) GetCategory(context context.Context, id string) (*Category, error) {
	return repository.categories.Get(context, id)
}

func (repository *BackendRepository) CreateCategory(context context.Context, category *Category) (*Category, error) {
	return repository.categories.Create(context, category)
}

func (repository *BackendRepository) UpdateCategory(context context.Context, id string, category *Category) (*Category, error) {
	return repository.categories.Replace(context, id, category)
}

func (repository *BackendRepository) DeleteCategory(context context.Context, id string) error {
	return repository.categories.Delete(context, id)
}
