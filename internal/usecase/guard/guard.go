package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
)

// Outcome is the result of an authorization check.
type Outcome int

const (
	Allow Outcome = iota
	Forbidden
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "ALLOW"
	case Forbidden:
		return "FORBIDDEN"
	case NotFound:
		return "NOT_FOUND"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ResourceKind selects the parent document a check is made against.
type ResourceKind string

const (
	KindPost    ResourceKind = "post"
	KindProfile ResourceKind = "profile"
)

// Decision carries the loaded parent document when the outcome is Allow.
type Decision struct {
	Kind    ResourceKind
	Outcome Outcome
	Post    *domain.Post
	Profile *domain.Profile
}

// Err turns a refused decision back into the domain error handlers map.
func (d Decision) Err() error {
	switch d.Outcome {
	case Allow:
		return nil
	case Forbidden:
		return domain.ErrNotAuthorized
	}
	if d.Kind == KindProfile {
		return domain.ErrProfileNotFound
	}
	return domain.ErrPostNotFound
}

// Guard loads parent documents and decides whether an actor may mutate them.
// It never writes.
type Guard struct {
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
}

func NewGuard(postRepo repository.PostRepository, profileRepo repository.ProfileRepository) *Guard {
	return &Guard{
		postRepo:    postRepo,
		profileRepo: profileRepo,
	}
}

// AuthorizePost loads the post and requires the actor to own it.
func (g *Guard) AuthorizePost(ctx context.Context, actorID, postID string) (*domain.Post, error) {
	post, err := g.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(actorID) {
		return nil, domain.ErrNotAuthorized
	}
	return post, nil
}

// PostExists loads the post without any ownership requirement.
func (g *Guard) PostExists(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := g.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	return post, nil
}

// ProfileOf loads the actor's own profile. The lookup is scoped to the actor,
// so no separate ownership check is needed.
func (g *Guard) ProfileOf(ctx context.Context, actorID string) (*domain.Profile, error) {
	profile, err := g.profileRepo.GetByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// Authorize decides whether actorID may mutate the resource. Posts require
// ownership. For profiles resourceID is ignored: the profile is always the
// actor's own. Store failures are returned as errors, never as an Outcome.
func (g *Guard) Authorize(ctx context.Context, actorID string, kind ResourceKind, resourceID string) (Decision, error) {
	switch kind {
	case KindPost:
		post, err := g.AuthorizePost(ctx, actorID, resourceID)
		if outcome, ok := OutcomeOf(err); ok {
			return Decision{Kind: kind, Outcome: outcome, Post: post}, nil
		}
		return Decision{}, err
	case KindProfile:
		profile, err := g.ProfileOf(ctx, actorID)
		if outcome, ok := OutcomeOf(err); ok {
			return Decision{Kind: kind, Outcome: outcome, Profile: profile}, nil
		}
		return Decision{}, err
	default:
		return Decision{}, fmt.Errorf("unknown resource kind %q", kind)
	}
}

// OutcomeOf classifies a guard error. ok is false for errors that are not
// authorization decisions (store failures).
func OutcomeOf(err error) (Outcome, bool) {
	switch {
	case err == nil:
		return Allow, true
	case errors.Is(err, domain.ErrNotAuthorized):
		return Forbidden, true
	case errors.Is(err, domain.ErrPostNotFound), errors.Is(err, domain.ErrProfileNotFound):
		return NotFound, true
	default:
		return 0, false
	}
}
