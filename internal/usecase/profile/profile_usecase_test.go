package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/infrastructure/messaging"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
	"github.com/gdugdh24/devconnector-backend/internal/repository/memory"
	"github.com/gdugdh24/devconnector-backend/internal/usecase/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.Event
}

func (p *recordingPublisher) Publish(e messaging.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Subject)
	}
	return out
}

type fixture struct {
	uc        *ProfileUseCase
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return newFixtureWith(t, memory.NewUserRepository(store), memory.NewProfileRepository(store), memory.NewPostRepository(store))
}

func newFixtureWith(t *testing.T, users repository.UserRepository, profiles repository.ProfileRepository, posts repository.PostRepository) *fixture {
	t.Helper()
	pub := &recordingPublisher{}
	uc := NewProfileUseCase(profiles, users, guard.NewGuard(posts, profiles), pub, zap.NewNop())

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	uc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return &fixture{uc: uc, users: users, profiles: profiles, publisher: pub}
}

func (f *fixture) addUser(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &domain.User{
		ID:     id,
		Name:   name,
		Email:  id + "@example.com",
		Avatar: "//avatar/" + id,
	}))
}

func (f *fixture) createProfile(t *testing.T, userID, handle string) *domain.Profile {
	t.Helper()
	res, err := f.uc.Upsert(context.Background(), userID, &ProfileInput{
		Handle: str(handle),
		Status: str("Developer"),
		Skills: str("go,sql"),
	})
	require.NoError(t, err)
	require.True(t, res.Created)
	return res.Profile
}

func TestUpsertCreatesThenMerges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.uc.Upsert(ctx, "alice", &ProfileInput{
		Handle:   str("alice"),
		Status:   str("Developer"),
		Skills:   str("go,sql"),
		Company:  str("Acme"),
		Bio:      str("hi"),
		Twitter:  str("https://twitter.com/alice"),
		Location: str(""),
	})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.HandleTaken)
	assert.NotEmpty(t, res.Profile.ID)
	assert.Equal(t, []string{"go", "sql"}, res.Profile.Skills)
	assert.Empty(t, res.Profile.Experience)
	assert.NotNil(t, res.Profile.Experience)

	res, err = f.uc.Upsert(ctx, "alice", &ProfileInput{
		Handle:  str("alice"),
		Company: str("Initech"),
		Bio:     str(""),
	})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "Initech", res.Profile.Company)
	assert.Equal(t, "hi", res.Profile.Bio)
	assert.Equal(t, "Developer", res.Profile.Status)
	assert.Equal(t, []string{"go", "sql"}, res.Profile.Skills)
	assert.Equal(t, domain.SocialLinks{}, res.Profile.Social)

	stored, err := f.profiles.GetByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, res.Profile, stored)
}

func TestUpsertUpdateSkipsHandleCheck(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createProfile(t, "alice", "shared")
	f.createProfile(t, "bob", "bob")

	res, err := f.uc.Upsert(ctx, "bob", &ProfileInput{Handle: str("shared")})
	require.NoError(t, err)
	assert.False(t, res.HandleTaken)
	assert.Equal(t, "shared", res.Profile.Handle)
}

// Creating a profile with a handle that is already in use reports the
// conflict and still inserts the profile.
func TestUpsertDuplicateHandleStillInserts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.createProfile(t, "alice", "dev")

	res, err := f.uc.Upsert(ctx, "bob", &ProfileInput{
		Handle: str("dev"),
		Status: str("Student"),
		Skills: str("js"),
	})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.HandleTaken)

	second, err := f.profiles.GetByUserID(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "dev", second.Handle)
	assert.NotEqual(t, first.ID, second.ID)

	all, err := f.profiles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byHandle, err := f.uc.GetByHandle(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byHandle.ID, "handle lookup returns the older profile")
}

func TestReadsPopulateOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "alice", "Alice")
	f.createProfile(t, "alice", "alice")
	f.createProfile(t, "ghost", "ghost")

	view, err := f.uc.GetMyProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, view.User)
	assert.Equal(t, &domain.UserRef{ID: "alice", Name: "Alice", Avatar: "//avatar/alice"}, view.User)

	view, err = f.uc.GetByUserID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, view.User)

	views, err := f.uc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	_, err = f.uc.GetByHandle(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	_, err = f.uc.GetMyProfile(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestExperienceLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createProfile(t, "alice", "alice")

	var ids []string
	for _, title := range []string{"Intern", "Engineer", "Lead"} {
		p, err := f.uc.AddExperience(ctx, "alice", &ExperienceRequest{
			Title:   title,
			Company: "Acme",
			From:    "2020-01-01",
			To:      "2021-06-30",
		})
		require.NoError(t, err)
		assert.Equal(t, title, p.Experience[0].Title, "newest entry comes first")
		ids = append(ids, p.Experience[0].ID)
	}

	stored, err := f.profiles.GetByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, stored.Experience, 3)
	assert.Equal(t, []string{"Lead", "Engineer", "Intern"}, []string{
		stored.Experience[0].Title, stored.Experience[1].Title, stored.Experience[2].Title,
	})
	require.NotNil(t, stored.Experience[0].To)
	assert.Equal(t, time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC), *stored.Experience[0].To)

	p, err := f.uc.RemoveExperience(ctx, "alice", ids[1])
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Lead", p.Experience[0].Title)
	assert.Equal(t, "Intern", p.Experience[1].Title)

	_, err = f.uc.RemoveExperience(ctx, "alice", "missing")
	assert.ErrorIs(t, err, domain.ErrExperienceNotFound)

	stored, err = f.profiles.GetByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, stored.Experience, 2, "failed removal writes nothing")
}

func TestEducationLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createProfile(t, "alice", "alice")

	p, err := f.uc.AddEducation(ctx, "alice", &EducationRequest{
		School:       "MIT",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         "2015-09-01",
		Current:      true,
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	assert.Nil(t, p.Education[0].To)
	assert.True(t, p.Education[0].Current)

	_, err = f.uc.RemoveEducation(ctx, "alice", "missing")
	assert.ErrorIs(t, err, domain.ErrEducationNotFound)

	p, err = f.uc.RemoveEducation(ctx, "alice", p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestSubCollectionsRequireProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.AddExperience(ctx, "alice", &ExperienceRequest{Title: "x", Company: "y", From: "2020-01-01"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = f.uc.AddEducation(ctx, "alice", &EducationRequest{School: "x", Degree: "y", FieldOfStudy: "z", From: "2020-01-01"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = f.uc.RemoveEducation(ctx, "alice", "e1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestAddExperienceRejectsBadDates(t *testing.T) {
	f := newFixture(t)
	f.createProfile(t, "alice", "alice")

	_, err := f.uc.AddExperience(context.Background(), "alice", &ExperienceRequest{
		Title:   "x",
		Company: "y",
		From:    "01/02/2020",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMutationsOnlyTouchActorProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createProfile(t, "alice", "alice")
	f.createProfile(t, "bob", "bob")

	p, err := f.uc.AddExperience(ctx, "bob", &ExperienceRequest{Title: "x", Company: "y", From: "2020-01-01"})
	require.NoError(t, err)

	_, err = f.uc.RemoveExperience(ctx, "alice", p.Experience[0].ID)
	assert.ErrorIs(t, err, domain.ErrExperienceNotFound)

	bob, err := f.profiles.GetByUserID(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bob.Experience, 1)
}

var errUserStoreDown = errors.New("user store unavailable")

type failingUserDelete struct {
	repository.UserRepository
}

func (failingUserDelete) Delete(context.Context, string) error {
	return errUserStoreDown
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("removes profile and user", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, "alice", "Alice")
		f.createProfile(t, "alice", "alice")

		require.NoError(t, f.uc.DeleteAccount(ctx, "alice"))

		_, err := f.profiles.GetByUserID(ctx, "alice")
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
		_, err = f.users.GetByID(ctx, "alice")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Equal(t, []string{messaging.SubjectAccountDeleted}, f.publisher.subjects())
	})

	t.Run("missing profile is not an error", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, "alice", "Alice")

		require.NoError(t, f.uc.DeleteAccount(ctx, "alice"))

		_, err := f.users.GetByID(ctx, "alice")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("nothing to delete", func(t *testing.T) {
		f := newFixture(t)
		assert.NoError(t, f.uc.DeleteAccount(ctx, "nobody"))
	})

	t.Run("user delete failure leaves user without profile", func(t *testing.T) {
		store := memory.NewStore()
		users := memory.NewUserRepository(store)
		f := newFixtureWith(t, failingUserDelete{users}, memory.NewProfileRepository(store), memory.NewPostRepository(store))
		f.addUser(t, "alice", "Alice")
		f.createProfile(t, "alice", "alice")

		err := f.uc.DeleteAccount(ctx, "alice")
		require.ErrorIs(t, err, errUserStoreDown)

		_, err = f.profiles.GetByUserID(ctx, "alice")
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
		user, err := users.GetByID(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.Empty(t, f.publisher.subjects())
	})
}
