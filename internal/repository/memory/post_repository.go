package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
)

type postRepository struct {
	s *Store
}

func NewPostRepository(s *Store) repository.PostRepository {
	return &postRepository{s: s}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.posts[post.ID] = post.Clone()
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return p.Clone(), nil
}

func (r *postRepository) List(ctx context.Context) ([]*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := make([]*domain.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		posts = append(posts, p.Clone())
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[post.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.s.posts[post.ID] = post.Clone()
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.s.posts, id)
	return nil
}
