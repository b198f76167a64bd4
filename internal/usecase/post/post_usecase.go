package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/cache"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/messaging"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/collection"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/guard"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostUseCase struct {
	postRepo  repository.PostRepository
	guard     *guard.Guard
	cache     cache.PostCache
	publisher messaging.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewPostUseCase(
	postRepo repository.PostRepository,
	postGuard *guard.Guard,
	postCache cache.PostCache,
	publisher messaging.Publisher,
	log *zap.Logger,
) *PostUseCase {
	return &PostUseCase{
		postRepo:  postRepo,
		guard:     postGuard,
		cache:     postCache,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// PostRequest is the body of a new post or comment
type PostRequest struct {
	Text   string `json:"text" binding:"required,min=10,max=300"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// GetPosts returns all posts, newest first
func (uc *PostUseCase) GetPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := uc.cache.GetPosts(ctx)
	if err == nil {
		return posts, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		uc.log.Warn("post cache read failed", zap.Error(err))
	}

	gen, genErr := uc.cache.Generation(ctx)
	posts, err = uc.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if genErr != nil {
		uc.log.Warn("post cache generation read failed", zap.Error(genErr))
		return posts, nil
	}
	if err := uc.cache.SetPosts(ctx, gen, posts); err != nil {
		uc.log.Warn("post cache write failed", zap.Error(err))
	}
	return posts, nil
}

// GetPost returns a single post
func (uc *PostUseCase) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if post, err := uc.cache.GetPost(ctx, id); err == nil {
		return post, nil
	}

	gen, genErr := uc.cache.Generation(ctx)
	post, err := uc.guard.PostExists(ctx, id)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		uc.log.Warn("post cache generation read failed", zap.String("post_id", id), zap.Error(genErr))
		return post, nil
	}
	if err := uc.cache.SetPost(ctx, gen, post); err != nil {
		uc.log.Warn("post cache write failed", zap.String("post_id", id), zap.Error(err))
	}
	return post, nil
}

// CreatePost stores a new post owned by userID
func (uc *PostUseCase) CreatePost(ctx context.Context, userID string, req *PostRequest) (*domain.Post, error) {
	post := &domain.Post{
		ID:       uuid.NewString(),
		UserID:   userID,
		Text:     req.Text,
		Name:     req.Name,
		Avatar:   req.Avatar,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     uc.now().UTC(),
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.afterWrite(ctx, messaging.SubjectPostCreated, post.ID, userID, "")
	return post, nil
}

// DeletePost removes a post. Only its owner may do so.
func (uc *PostUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	decision, err := uc.guard.Authorize(ctx, userID, guard.KindPost, postID)
	if err != nil {
		return err
	}
	if err := decision.Err(); err != nil {
		return err
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	uc.afterWrite(ctx, messaging.SubjectPostDeleted, postID, userID, "")
	return nil
}

// Like adds the user's like in front of the post's likes
func (uc *PostUseCase) Like(ctx context.Context, userID, postID string) (*domain.Post, error) {
	post, err := uc.mutate(ctx, postID, func(p *domain.Post) error {
		likes, err := collection.PrependUnique(p.Likes, domain.Like{UserID: userID})
		if err != nil {
			return domain.ErrAlreadyLiked
		}
		p.Likes = likes
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, messaging.SubjectPostLiked, postID, userID, "")
	return post, nil
}

// Unlike removes the user's like from the post
func (uc *PostUseCase) Unlike(ctx context.Context, userID, postID string) (*domain.Post, error) {
	post, err := uc.mutate(ctx, postID, func(p *domain.Post) error {
		likes, err := collection.RemoveByKey(p.Likes, userID)
		if err != nil {
			return domain.ErrNotLiked
		}
		p.Likes = likes
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, messaging.SubjectPostUnliked, postID, userID, "")
	return post, nil
}

// AddComment prepends a comment to the post
func (uc *PostUseCase) AddComment(ctx context.Context, userID, postID string, req *PostRequest) (*domain.Post, error) {
	comment := domain.Comment{
		ID:     uuid.NewString(),
		UserID: userID,
		Text:   req.Text,
		Name:   req.Name,
		Avatar: req.Avatar,
		Date:   uc.now().UTC(),
	}

	post, err := uc.mutate(ctx, postID, func(p *domain.Post) error {
		p.Comments = collection.Prepend(p.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, messaging.SubjectPostCommented, postID, userID, comment.ID)
	return post, nil
}

// RemoveComment removes the comment with id commentID from the post
func (uc *PostUseCase) RemoveComment(ctx context.Context, userID, postID, commentID string) (*domain.Post, error) {
	post, err := uc.mutate(ctx, postID, func(p *domain.Post) error {
		comments, err := collection.RemoveByKey(p.Comments, commentID)
		if err != nil {
			return domain.ErrCommentNotFound
		}
		p.Comments = comments
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, messaging.SubjectPostUncommented, postID, userID, commentID)
	return post, nil
}

// mutate loads the post, applies fn and saves the whole document.
// Nothing is written when fn fails.
func (uc *PostUseCase) mutate(ctx context.Context, postID string, fn func(*domain.Post) error) (*domain.Post, error) {
	post, err := uc.guard.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := fn(post); err != nil {
		return nil, err
	}
	if err := uc.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return post, nil
}

// afterWrite drops stale cache entries and announces the change. Failures
// here never fail the request.
func (uc *PostUseCase) afterWrite(ctx context.Context, subject, postID, userID, commentID string) {
	if err := uc.cache.Invalidate(ctx, postID); err != nil {
		uc.log.Warn("post cache invalidation failed", zap.String("post_id", postID), zap.Error(err))
	}

	event := messaging.NewEvent(subject, userID)
	event.PostID = postID
	event.CommentID = commentID
	if err := uc.publisher.Publish(event); err != nil {
		uc.log.Warn("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
