package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
)

type profileRepository struct {
	s *Store
}

func NewProfileRepository(s *Store) repository.ProfileRepository {
	return &profileRepository{s: s}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.findByUser(profile.UserID) != nil {
		return fmt.Errorf("profile for user %s: duplicate key", profile.UserID)
	}
	r.s.profiles[profile.ID] = profile.Clone()
	return nil
}

// findByUser expects the caller to hold the lock.
func (r *profileRepository) findByUser(userID string) *domain.Profile {
	for _, p := range r.s.profiles {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p := r.findByUser(userID)
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

// GetByHandle returns the oldest profile carrying the handle.
func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.Profile
	for _, p := range r.s.profiles {
		if p.Handle != handle {
			continue
		}
		if found == nil || p.Date.Before(found.Date) {
			found = p
		}
	}
	if found == nil {
		return nil, domain.ErrProfileNotFound
	}
	return found.Clone(), nil
}

func (r *profileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profiles := make([]*domain.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		profiles = append(profiles, p.Clone())
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Date.After(profiles[j].Date)
	})
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.profiles[profile.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	r.s.profiles[profile.ID] = profile.Clone()
	return nil
}

func (r *profileRepository) ApplyPatch(ctx context.Context, userID string, patch *domain.ProfilePatch) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.findByUser(userID)
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	updated := p.Clone()
	patch.ApplyTo(updated)
	updated.UserID = userID
	r.s.profiles[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.findByUser(userID)
	if p == nil {
		return domain.ErrProfileNotFound
	}
	delete(r.s.profiles, p.ID)
	return nil
}
