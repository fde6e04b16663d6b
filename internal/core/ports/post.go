package ports

import (
	"context"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/scope"
)

type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	GetPostByID(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context, q scope.Query) ([]domain.Post, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

type PostService interface {
	CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context, q scope.Query) ([]domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
}
