package book

import (
	"context"
	"net/url"

	"github.com/taibuivan/tinytales/internal/platform/backend"
)

type Repository interface {
	ListBooks(context context.Context, query url.Values) ([]*Book, error)
	GetBook(context context.Context, id string) (*Book, error)
	CreateBook(context context.Context, book *Book) (*Book, error)
	UpdateBook(context context.Context, id string, book *Book) (*Book, error)
	DeleteBook(context context.Context, id string) error
	UploadAsset(context context.Context, target backend.UploadTarget, file *backend.File) (string, error)
}
