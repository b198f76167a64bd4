package repository

import (
	"context"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns all posts, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	// Update replaces the stored document as a whole, likes and comments included.
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
}
