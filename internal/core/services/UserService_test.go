package services

import (
	"context"
	"errors"
	"testing"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/scope"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func newUserService(s *memStore) *UserService {
	return NewUserService(
		&fakeUserRepo{s},
		&fakePostRepo{s},
		&fakeTx{s},
		nopLogger{},
		validator.New(),
		newMemCache(),
	)
}

func validUser() *domain.User {
	return &domain.User{
		Name:     "Test Create User",
		Email:    "test_unique@example.com",
		Age:      intp(30),
		UserType: domain.Regular,
		Active:   true,
	}
}

func TestCreateUserPersistsAndAssignsID(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	created, err := us.CreateUser(context.Background(), validUser())
	require.NoError(t, err)
	assert.True(t, created.Persisted())

	got, err := us.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Create User", got.Name)
}

func TestCreateUserValidationFailurePersistsNothing(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	u := validUser()
	u.Name = ""
	u.Email = "invalid"

	_, err := us.CreateUser(context.Background(), u)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["name"], "can't be blank")
	assert.Contains(t, verr.Fields["email"], "is invalid")
	assert.Empty(t, s.users)
}

func TestCreateGuestWithoutNameOrEmail(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	created, err := us.CreateUser(context.Background(), &domain.User{UserType: domain.Guest})
	require.NoError(t, err)
	assert.True(t, created.Persisted())
}

func TestCreateUserNegativeAgeRejected(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	u := validUser()
	u.Age = intp(-5)

	_, err := us.CreateUser(context.Background(), u)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["age"], "must be greater than 0")
}

func TestUpdateUserDoesNotRecheckAge(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	created, err := us.CreateUser(context.Background(), validUser())
	require.NoError(t, err)

	created.Age = intp(-5)
	updated, err := us.UpdateUser(context.Background(), created)
	require.NoError(t, err)
	assert.Equal(t, -5, *updated.Age)
}

func TestUpdateUserStillValidatesPresence(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	created, err := us.CreateUser(context.Background(), validUser())
	require.NoError(t, err)

	created.Name = ""
	_, err = us.UpdateUser(context.Background(), created)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGetUserNotFound(t *testing.T) {
	us := newUserService(newMemStore())

	_, err := us.GetUser(context.Background(), 9999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var verr *domain.ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestGetUserServedFromCache(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	created, err := us.CreateUser(context.Background(), validUser())
	require.NoError(t, err)

	_, err = us.GetUser(context.Background(), created.ID)
	require.NoError(t, err)

	// Mutate storage behind the service's back; the cached copy wins.
	u := s.users[created.ID]
	u.Name = "Changed Behind Cache"
	s.users[created.ID] = u

	got, err := us.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Create User", got.Name)
}

func TestUpdateUserInvalidatesCache(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	created, err := us.CreateUser(context.Background(), validUser())
	require.NoError(t, err)

	_, err = us.GetUser(context.Background(), created.ID)
	require.NoError(t, err)

	created.Name = "Renamed User"
	_, err = us.UpdateUser(context.Background(), created)
	require.NoError(t, err)

	got, err := us.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", got.Name)
}

func TestDeleteUserCascadesToPosts(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)
	posts := &fakePostRepo{s}

	owner, err := us.CreateUser(context.Background(), validUser())
	require.NoError(t, err)

	other := validUser()
	other.Email = "other@example.com"
	otherUser, err := us.CreateUser(context.Background(), other)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := posts.CreatePost(context.Background(), &domain.Post{
			Title: "t", Content: "long enough content", UserID: owner.ID,
		})
		require.NoError(t, err)
	}
	kept, err := posts.CreatePost(context.Background(), &domain.Post{
		Title: "t", Content: "long enough content", UserID: otherUser.ID,
	})
	require.NoError(t, err)

	deleted, err := us.DeleteUser(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	_, err = us.GetUser(context.Background(), owner.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	remaining, err := posts.ListPosts(context.Background(), scope.Query{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestDeleteUserRollsBackOnPartialFailure(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)
	posts := &fakePostRepo{s}

	owner, err := us.CreateUser(context.Background(), validUser())
	require.NoError(t, err)

	ids := make([]int64, 0, 3)
	for i := 0; i < 3; i++ {
		p, err := posts.CreatePost(context.Background(), &domain.Post{
			Title: "t", Content: "long enough content", UserID: owner.ID,
		})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	// Second dependent delete blows up; nothing may be applied.
	s.failDeletePost[ids[1]] = errors.New("disk on fire")

	_, err = us.DeleteUser(context.Background(), owner.ID)

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)

	assert.Len(t, s.posts, 3)
	_, err = us.GetUser(context.Background(), owner.ID)
	assert.NoError(t, err)
}

func TestDeleteUserNotFound(t *testing.T) {
	us := newUserService(newMemStore())

	_, err := us.DeleteUser(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListUsersAppliesScope(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	names := []struct {
		name   string
		active bool
	}{
		{"Charlie", true},
		{"Alice", true},
		{"Bob", false},
	}
	for _, n := range names {
		u := validUser()
		u.Name = n.name
		u.Email = "u@example.com"
		u.Active = n.active
		_, err := us.CreateUser(context.Background(), u)
		require.NoError(t, err)
	}

	got, err := us.ListUsers(context.Background(), scope.Active().And(scope.SortedByName()))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, "Charlie", got[1].Name)
}

func TestCountUsers(t *testing.T) {
	s := newMemStore()
	us := newUserService(s)

	for i := 0; i < 2; i++ {
		u := validUser()
		u.Active = i == 0
		_, err := us.CreateUser(context.Background(), u)
		require.NoError(t, err)
	}

	total, err := us.CountUsers(context.Background(), scope.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	active, err := us.CountUsers(context.Background(), scope.Active())
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)
}
