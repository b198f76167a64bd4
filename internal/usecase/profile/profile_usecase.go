package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/messaging"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/collection"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/guard"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	guard       *guard.Guard
	publisher   messaging.Publisher
	log         *zap.Logger
	now         func() time.Time
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	profileGuard *guard.Guard,
	publisher messaging.Publisher,
	log *zap.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		guard:       profileGuard,
		publisher:   publisher,
		log:         log,
		now:         time.Now,
	}
}

// ExperienceRequest represents an experience entry to add
type ExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required,datetime=2006-01-02"`
	To          string `json:"to" binding:"omitempty,datetime=2006-01-02"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationRequest represents an education entry to add
type EducationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required,datetime=2006-01-02"`
	To           string `json:"to" binding:"omitempty,datetime=2006-01-02"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// UpsertResult reports what Upsert did.
type UpsertResult struct {
	Profile *domain.Profile
	Created bool
	// HandleTaken is set when another profile already used the handle of a
	// newly created profile. The profile is inserted regardless.
	HandleTaken bool
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.ProfileView, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.populate(ctx, profile), nil
}

// GetByHandle returns the profile carrying handle
func (uc *ProfileUseCase) GetByHandle(ctx context.Context, handle string) (*domain.ProfileView, error) {
	profile, err := uc.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	return uc.populate(ctx, profile), nil
}

// GetByUserID returns the profile of another user
func (uc *ProfileUseCase) GetByUserID(ctx context.Context, userID string) (*domain.ProfileView, error) {
	return uc.GetMyProfile(ctx, userID)
}

// GetAll returns every profile
func (uc *ProfileUseCase) GetAll(ctx context.Context) ([]*domain.ProfileView, error) {
	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	views := make([]*domain.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, uc.populate(ctx, p))
	}
	return views, nil
}

// populate attaches the owner's name and avatar. A missing owner leaves User nil.
func (uc *ProfileUseCase) populate(ctx context.Context, profile *domain.Profile) *domain.ProfileView {
	view := &domain.ProfileView{Profile: profile}
	user, err := uc.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			uc.log.Warn("failed to populate profile owner",
				zap.String("profile_id", profile.ID), zap.Error(err))
		}
		return view
	}
	view.User = user.Ref()
	return view
}

// Upsert merges in into the actor's profile, creating it when missing.
//
// On creation the handle is checked against existing profiles first. A
// conflict is reported through HandleTaken but does not stop the insert.
func (uc *ProfileUseCase) Upsert(ctx context.Context, userID string, in *ProfileInput) (*UpsertResult, error) {
	patch := BuildPatch(userID, in)

	_, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		updated, err := uc.profileRepo.ApplyPatch(ctx, userID, patch)
		if err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
		return &UpsertResult{Profile: updated}, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	result := &UpsertResult{Created: true}
	if patch.Handle != nil {
		_, err := uc.profileRepo.GetByHandle(ctx, *patch.Handle)
		switch {
		case err == nil:
			// TODO: reject the insert once clients stop relying on the duplicate being created.
			result.HandleTaken = true
			uc.log.Warn("profile handle already exists",
				zap.String("handle", *patch.Handle), zap.String("user_id", userID))
		case !errors.Is(err, domain.ErrProfileNotFound):
			return nil, fmt.Errorf("failed to check handle: %w", err)
		}
	}

	profile := patch.NewProfile()
	profile.ID = uuid.NewString()
	profile.Date = uc.now().UTC()
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	result.Profile = profile
	return result, nil
}

// AddExperience prepends an experience entry to the actor's profile
func (uc *ProfileUseCase) AddExperience(ctx context.Context, userID string, req *ExperienceRequest) (*domain.Profile, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	entry := domain.Experience{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}
	return uc.mutate(ctx, userID, func(p *domain.Profile) error {
		p.Experience = collection.Prepend(p.Experience, entry)
		return nil
	})
}

// AddEducation prepends an education entry to the actor's profile
func (uc *ProfileUseCase) AddEducation(ctx context.Context, userID string, req *EducationRequest) (*domain.Profile, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	entry := domain.Education{
		ID:           uuid.NewString(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}
	return uc.mutate(ctx, userID, func(p *domain.Profile) error {
		p.Education = collection.Prepend(p.Education, entry)
		return nil
	})
}

// RemoveExperience removes the experience entry with id expID
func (uc *ProfileUseCase) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	return uc.mutate(ctx, userID, func(p *domain.Profile) error {
		rest, err := collection.RemoveByKey(p.Experience, expID)
		if err != nil {
			return domain.ErrExperienceNotFound
		}
		p.Experience = rest
		return nil
	})
}

// RemoveEducation removes the education entry with id eduID
func (uc *ProfileUseCase) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	return uc.mutate(ctx, userID, func(p *domain.Profile) error {
		rest, err := collection.RemoveByKey(p.Education, eduID)
		if err != nil {
			return domain.ErrEducationNotFound
		}
		p.Education = rest
		return nil
	})
}

// mutate loads the actor's profile, applies fn and saves the whole document.
// Nothing is written when fn fails.
func (uc *ProfileUseCase) mutate(ctx context.Context, userID string, fn func(*domain.Profile) error) (*domain.Profile, error) {
	decision, err := uc.guard.Authorize(ctx, userID, guard.KindProfile, "")
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}
	profile := decision.Profile
	if err := fn(profile); err != nil {
		return nil, err
	}
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

func parseRange(fromStr, toStr string) (time.Time, *time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, nil, domain.ErrInvalidInput
	}
	if toStr == "" {
		return from, nil, nil
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return time.Time{}, nil, domain.ErrInvalidInput
	}
	return from, &to, nil
}
