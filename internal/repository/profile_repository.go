package repository

import (
	"context"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	// Update replaces the stored document as a whole, sub-collections included.
	Update(ctx context.Context, profile *domain.Profile) error
	// ApplyPatch merges patch into the profile owned by userID and returns the result.
	ApplyPatch(ctx context.Context, userID string, patch *domain.ProfilePatch) (*domain.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
