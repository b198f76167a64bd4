package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	var c PostCache = Noop{}

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.SetPosts(ctx, gen, []*domain.Post{{ID: "p1"}}))
	_, err = c.GetPosts(ctx)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.SetPost(ctx, gen, &domain.Post{ID: "p1"}))
	_, err = c.GetPost(ctx, "p1")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Invalidate(ctx, "p1"))
}

func TestRedisPostCache(t *testing.T) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		t.Skip("Skipping test - no redis connection configured")
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		addr += ":" + port
	} else {
		addr += ":6379"
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	c := NewRedisPostCache(client, time.Minute)
	post := &domain.Post{
		ID:    uuid.NewString(),
		Text:  "cached post",
		Likes: []domain.Like{{UserID: "u1"}},
		Date:  time.Now().UTC().Truncate(time.Second),
	}

	_, err := c.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrMiss)

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.SetPost(ctx, gen, post))
	require.NoError(t, c.SetPosts(ctx, gen, []*domain.Post{post}))

	got, err := c.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Text, got.Text)
	assert.Equal(t, post.Likes, got.Likes)

	list, err := c.GetPosts(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	require.NoError(t, c.Invalidate(ctx, post.ID))
	_, err = c.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrMiss)
	_, err = c.GetPosts(ctx)
	assert.ErrorIs(t, err, ErrMiss)

	// a fill that started before the invalidation is dropped
	require.NoError(t, c.SetPost(ctx, gen, post))
	_, err = c.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrMiss)

	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Greater(t, next, gen)
	require.NoError(t, c.SetPost(ctx, next, post))
	_, err = c.GetPost(ctx, post.ID)
	assert.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, post.ID))
}
