package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/scope"
)

// memStore backs the fake repositories. The fake tx manager snapshots it
// before the unit of work and restores it on failure, mimicking rollback.
type memStore struct {
	users map[int64]domain.User
	posts map[int64]domain.Post

	nextUserID int64
	nextPostID int64

	failDeletePost map[int64]error
}

func newMemStore() *memStore {
	return &memStore{
		users:          map[int64]domain.User{},
		posts:          map[int64]domain.Post{},
		failDeletePost: map[int64]error{},
	}
}

func (s *memStore) usersInOrder() []domain.User {
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.users[id])
	}
	return out
}

func (s *memStore) postsInOrder() []domain.Post {
	ids := make([]int64, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.posts[id])
	}
	return out
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.nextUserID++
	u := *user
	u.ID = r.s.nextUserID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.s.users[user.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	u := *user
	u.UpdatedAt = time.Now()
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id int64) error {
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context, q scope.Query) ([]domain.User, error) {
	return scope.ApplyUsers(q, r.s.usersInOrder()), nil
}

func (r *fakeUserRepo) CountUsers(_ context.Context, q scope.Query) (int64, error) {
	return int64(len(scope.ApplyUsers(scope.Query{Conds: q.Conds}, r.s.usersInOrder()))), nil
}

type fakePostRepo struct{ s *memStore }

func (r *fakePostRepo) CreatePost(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.s.nextPostID++
	p := *post
	p.ID = r.s.nextPostID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	r.s.posts[p.ID] = p
	return &p, nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *fakePostRepo) ListPosts(_ context.Context, q scope.Query) ([]domain.Post, error) {
	return scope.ApplyPosts(q, r.s.postsInOrder()), nil
}

func (r *fakePostRepo) ListPostsByUser(_ context.Context, userID int64) ([]domain.Post, error) {
	q := scope.Query{Conds: []scope.Cond{{Field: "user_id", Value: userID}}}
	return scope.ApplyPosts(q, r.s.postsInOrder()), nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id int64) error {
	if err := r.s.failDeletePost[id]; err != nil {
		return err
	}
	if _, ok := r.s.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

// fakeTx snapshots the store and restores it when fn fails, so the tests
// observe real all-or-nothing behavior.
type fakeTx struct{ s *memStore }

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	usersCopy := make(map[int64]domain.User, len(t.s.users))
	for k, v := range t.s.users {
		usersCopy[k] = v
	}
	postsCopy := make(map[int64]domain.Post, len(t.s.posts))
	for k, v := range t.s.posts {
		postsCopy[k] = v
	}

	if err := fn(ctx); err != nil {
		t.s.users = usersCopy
		t.s.posts = postsCopy
		return err
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Warn(string, map[string]interface{})  {}

var errCacheMiss = errors.New("cache miss")

type memCache struct{ m map[string][]byte }

func newMemCache() *memCache {
	return &memCache{m: map[string][]byte{}}
}

func (c *memCache) Get(key string) ([]byte, error) {
	v, ok := c.m[key]
	if !ok {
		return nil, errCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(key string, value []byte, _ time.Duration) error {
	c.m[key] = value
	return nil
}

func (c *memCache) Delete(key string) error {
	delete(c.m, key)
	return nil
}
