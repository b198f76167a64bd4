package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepositoryCopiesDocuments(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(NewStore())

	post := &domain.Post{ID: "p1", UserID: "alice", Likes: []domain.Like{{UserID: "bob"}}}
	require.NoError(t, repo.Create(ctx, post))

	post.Likes[0].UserID = "mallory"
	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Likes[0].UserID)

	got.Likes = append(got.Likes, domain.Like{UserID: "carol"})
	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, again.Likes, 1)
}

func TestPostRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(NewStore())
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	seed := []struct {
		id  string
		age time.Duration
	}{
		{"old", 0},
		{"new", 2 * time.Hour},
		{"mid", time.Hour},
	}
	for _, s := range seed {
		require.NoError(t, repo.Create(ctx, &domain.Post{ID: s.id, Date: base.Add(s.age)}))
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestPostRepositoryMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(NewStore())

	_, err := repo.GetByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Post{ID: "x"}), domain.ErrPostNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "x"), domain.ErrPostNotFound)
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(NewStore())
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Profile{ID: "a", UserID: "alice", Handle: "dev", Date: base}))
	require.NoError(t, repo.Create(ctx, &domain.Profile{ID: "b", UserID: "bob", Handle: "dev", Date: base.Add(time.Hour)}))
	assert.Error(t, repo.Create(ctx, &domain.Profile{ID: "c", UserID: "alice"}), "one profile per user")

	byHandle, err := repo.GetByHandle(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, "a", byHandle.ID)

	_, err = repo.GetByHandle(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)

	require.NoError(t, repo.DeleteByUserID(ctx, "alice"))
	assert.ErrorIs(t, repo.DeleteByUserID(ctx, "alice"), domain.ErrProfileNotFound)
	_, err = repo.GetByUserID(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileRepositoryApplyPatch(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(NewStore())
	require.NoError(t, repo.Create(ctx, &domain.Profile{
		ID:         "a",
		UserID:     "alice",
		Handle:     "alice",
		Company:    "Acme",
		Experience: []domain.Experience{{ID: "e1", Title: "Dev"}},
	}))

	company := "Initech"
	updated, err := repo.ApplyPatch(ctx, "alice", &domain.ProfilePatch{
		UserID:  "alice",
		Company: &company,
		Social:  &domain.SocialLinks{Youtube: "https://youtube.com/alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Initech", updated.Company)
	assert.Equal(t, "alice", updated.Handle)
	assert.Equal(t, "https://youtube.com/alice", updated.Social.Youtube)
	assert.Len(t, updated.Experience, 1, "sub-collections are not touched by a patch")

	_, err = repo.ApplyPatch(ctx, "bob", &domain.ProfilePatch{UserID: "bob"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", Email: "alice@example.com", Name: "Alice"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "u2", Email: "ALICE@example.com"}), domain.ErrEmailTaken)

	u, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), domain.ErrUserNotFound)
}
