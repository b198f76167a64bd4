package repository

import (
	"context"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
