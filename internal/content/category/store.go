package category

import (
	"context"
	"net/url"
)

type Repository interface {
	ListCategories(context context.Context, query url.Values) ([]*Category, error)
	GetCategory(context context.Context, id string) (*Category, error)
	CreateCategory(context context.Context, category *Category) (*Category, error)
	UpdateCategory(context context.Context, id string, category *Category) (*Category, error)
	DeleteCategory(context context.Context, id string) error
}
