// Package storage defines the contract every post store implements. A store
// is the only code allowed to write posts.
package storage

import (
	"context"
	"time"

	"github.com/subratpandeyy/The-Wedding-Shades/models"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

// PostStore persists posts. Every operation validates its input with the
// models validators before touching the backend, so no entry path can write
// an invalid post.
type PostStore interface {
	Create(ctx context.Context, in models.PostInput) (*models.Post, error)
	// List returns a snapshot ordered by creation time, newest first.
	List(ctx context.Context, filter models.ListFilter) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id string, in models.PostInput) (*models.Post, error)
	// DeleteByID removes the post and returns it as it was stored.
	DeleteByID(ctx context.Context, id string) (*models.Post, error)
	// Migrate prepares schema and indexes. It is safe to call repeatedly.
	Migrate(ctx context.Context) error
	Close() error
}

// Clock returns the time stamped on writes. Stores truncate it to the
// precision their backend keeps.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}

func ErrPostNotFound() error {
	return utils.NewNotFoundError("Post not found")
}

func ErrInvalidPostID(err error) error {
	return utils.NewInvalidIDError("Invalid post ID", err)
}
