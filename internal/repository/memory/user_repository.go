package memory

import (
	"context"
	"strings"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
)

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailTaken
		}
	}
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}
