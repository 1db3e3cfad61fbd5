// Package repository defines the storage interfaces the service layer
// depends on. Services receive these interfaces, never the concrete
// mongodb.Store, so tests can substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/chhitz007/Blog-Posts/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// GetByUsername returns the user document whose username matches.
	// If duplicates exist in the store it returns the first match in
	// natural order. Returns apperror.ErrNotFound when there is none.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List returns every post in the store's natural (insertion) order.
	List(ctx context.Context) ([]model.Post, error)
	// Update replaces title, content and tags in place. Comments and the
	// author are never touched by Update.
	Update(ctx context.Context, post *model.Post) error
	// AppendComment atomically appends one raw comment string to the
	// post's comment list, preserving insertion order.
	AppendComment(ctx context.Context, id, comment string) error
}
