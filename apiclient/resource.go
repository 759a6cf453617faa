package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Resource is a typed wrapper around one backend REST collection.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource creates a wrapper for the collection at path, e.g. "/products".
func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

// Path is the collection path relative to the API base URL.
func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List fetches the collection. query is passed through unchanged. The backend may answer
// with a bare array or an envelope of the form {"data": [...]}.
func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, http.MethodGet, r.path, query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// Get fetches a single item by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a new item and returns the backend's copy of it.
func (r *Resource[T]) Create(ctx context.Context, item T) (*T, error) {
	var created T
	if err := r.client.Do(ctx, http.MethodPost, r.path, nil, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the item with the given id.
func (r *Resource[T]) Update(ctx context.Context, id string, item T) (*T, error) {
	var updated T
	if err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), nil, item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the item with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("[Resource List] decode: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("[Resource List] decode: %w", err)
	}
	if envelope.Data == nil {
		return []T{}, nil
	}
	return envelope.Data, nil
}
