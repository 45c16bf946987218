// Package store persists processed articles keyed by their URL.
package store

import (
	"context"
	"errors"
)

// Record is one persisted article.
type Record struct {
	URL     string `json:"url"`
	Summary string `json:"summary"`
	Image   string `json:"image,omitempty"`
	Link    string `json:"link"`
}

var (
	// ErrDuplicate means a record with the same URL already exists.
	ErrDuplicate = errors.New("article with this URL already exists")
	// ErrNotFound means no record matches the URL.
	ErrNotFound = errors.New("article not found")
)

// Store is an opaque keyed collection of article records. URL uniqueness
// is enforced by implementations.
type Store interface {
	Insert(ctx context.Context, rec Record) error
	FindByURL(ctx context.Context, url string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, url string) error
}
