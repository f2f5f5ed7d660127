package book

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

// BackendRepository reads and writes books through /api/books.
type BackendRepository struct {
	client *backend.Client
	books  *backend.Resource[Book]
}

func NewBackendRepository(client *backend.Client) *BackendRepository {
	return &BackendRepository{
		client: client,
		books:  backend.NewResource[Book](client, "/api/books"),
	}
}

func (repository *BackendRepository) ListBooks(context context.Context, query url.Values) ([]*Book, error) {
	return repository.books.List(context, query)
}

func (repository *BackendRepository) GetBook(context context.Context, id string) (*Book, error) {
	return repository.books.Get(context, id)
}

func (repository *BackendRepository) CreateBook(context context.Context, book *Book) (*Book, error) {
	return repository.books.Create(context, book)
}

func (repository *BackendRepository) UpdateBook(context context.Context, id string, book *Book) (*Book, error) {
	return repository.books.Replace(context, id, book)
}

func (repository *BackendRepository) DeleteBook(context context.Context, id string) error {
	return repository.books.Delete(context, id)
}

func (repository *BackendRepository) UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error) {
	return repository.client.Upload(context, target, file)
}
