package ports

import (
	"context"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/scope"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, q scope.Query) ([]domain.User, error)
	CountUsers(ctx context.Context, q scope.Query) (int64, error)
}

type UserService interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	// DeleteUser removes the user and every post it owns in one atomic
	// unit, returning the number of posts removed.
	DeleteUser(ctx context.Context, id int64) (int, error)
	ListUsers(ctx context.Context, q scope.Query) ([]domain.User, error)
	CountUsers(ctx context.Context, q scope.Query) (int64, error)
}
