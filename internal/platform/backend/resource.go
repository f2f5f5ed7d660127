// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"context"
	"net/url"
)

// Resource is the CRUD surface of one backend collection, e.g. /api/books.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path to client.
func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

// Path returns the collection path.
func (resource *Resource[T]) Path() string {
	return resource.path
}

// ItemPath returns the path of one element, escaping id.
func (resource *Resource[T]) ItemPath(id string) string {
	return resource.path + "/" + url.PathEscape(id)
}

// List fetches every element matching query, following pagination.
func (resource *Resource[T]) List(ctx context.Context, query url.Values) ([]*T, error) {
	return FetchAll[*T](ctx, resource.client, resource.path, query, 0)
}

// Get fetches one element.
func (resource *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := resource.client.Get(ctx, resource.ItemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts item and returns the stored element as echoed by the backend.
func (resource *Resource[T]) Create(ctx context.Context, item *T) (*T, error) {
	var created T
	if err := resource.client.Post(ctx, resource.path, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Replace sends the full element with PUT.
func (resource *Resource[T]) Replace(ctx context.Context, id string, item *T) (*T, error) {
	updated := *item
	if err := resource.client.Put(ctx, resource.ItemPath(id), item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Patch sends a partial update.
func (resource *Resource[T]) Patch(ctx context.Context, id string, fields any) (*T, error) {
	var updated T
	if err := resource.client.Patch(ctx, resource.ItemPath(id), fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes one element.
func (resource *Resource[T]) Delete(ctx context.Context, id string) error {
	return resource.client.Delete(ctx, resource.ItemPath(id))
}
