package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	recentPostsKey = "posts:recent"
	generationKey  = "posts:gen"
)

// ErrMiss is returned when the requested entry is not cached.
var ErrMiss = errors.New("cache miss")

// PostCache keeps the post feed and single posts close to the handlers.
//
// Every Invalidate bumps a generation counter. A reader takes the
// generation before loading from the store and passes it to SetPosts or
// SetPost; the fill is dropped when a write happened in between.
type PostCache interface {
	Generation(ctx context.Context) (int64, error)
	GetPosts(ctx context.Context) ([]*domain.Post, error)
	SetPosts(ctx context.Context, gen int64, posts []*domain.Post) error
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	SetPost(ctx context.Context, gen int64, post *domain.Post) error
	// Invalidate drops the cached post and the feed.
	Invalidate(ctx context.Context, postID string) error
}

type redisPostCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPostCache(client *redis.Client, ttl time.Duration) PostCache {
	return &redisPostCache{client: client, ttl: ttl}
}

func postKey(id string) string {
	return fmt.Sprintf("post:%s", id)
}

func (c *redisPostCache) Generation(ctx context.Context) (int64, error) {
	return generation(ctx, c.client)
}

func (c *redisPostCache) GetPosts(ctx context.Context) ([]*domain.Post, error) {
	var posts []*domain.Post
	if err := c.get(ctx, recentPostsKey, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *redisPostCache) SetPosts(ctx context.Context, gen int64, posts []*domain.Post) error {
	return c.set(ctx, gen, recentPostsKey, posts)
}

func (c *redisPostCache) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := c.get(ctx, postKey(id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *redisPostCache) SetPost(ctx context.Context, gen int64, post *domain.Post) error {
	return c.set(ctx, gen, postKey(post.ID), post)
}

func (c *redisPostCache) Invalidate(ctx context.Context, postID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, postKey(postID), recentPostsKey)
		return nil
	})
	return err
}

func (c *redisPostCache) get(ctx context.Context, key string, dst interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(data, dst)
}

// set writes v only while the generation still equals gen. A concurrent
// Invalidate aborts the transaction and the fill is skipped.
func (c *redisPostCache) set(ctx context.Context, gen int64, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, generationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, cmd getter) (int64, error) {
	gen, err := cmd.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Noop is used when Redis is not configured: every read misses.
type Noop struct{}

func (Noop) Generation(context.Context) (int64, error) { return 0, nil }
func (Noop) GetPosts(context.Context) ([]*domain.Post, error) { return nil, ErrMiss }
func (Noop) SetPosts(context.Context, int64, []*domain.Post) error { return nil }
func (Noop) GetPost(context.Context, string) (*domain.Post, error) { return nil, ErrMiss }
func (Noop) SetPost(context.Context, int64, *domain.Post) error { return nil }
func (Noop) Invalidate(context.Context, string) error { return nil }
