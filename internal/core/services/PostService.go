package services

import (
	"context"
	"errors"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/ports"
	"blogsvc/internal/core/scope"
	"blogsvc/internal/core/validation"

	"github.com/go-playground/validator/v10"
)

// PostService coordinates the post lifecycle. A post cannot exist without
// a resolvable owner, so creation re-checks the owner inside the same
// transaction as the insert.
type PostService struct {
	repo     ports.PostRepository
	users    ports.UserRepository
	tx       ports.TxManager
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewPostService(
	repo ports.PostRepository,
	users ports.UserRepository,
	tx ports.TxManager,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *PostService {
	return &PostService{
		repo:     repo,
		users:    users,
		tx:       tx,
		logger:   logger,
		validate: validate,
	}
}

func (ps *PostService) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	errs := validation.ValidatePost(ps.validate, post)
	if errs.Any() {
		ps.logger.Info("Post rejected by validation", map[string]interface{}{
			"errors": errs,
			"method": "CreatePost",
		})
		return nil, &domain.ValidationError{Fields: errs}
	}

	var created *domain.Post
	err := ps.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := ps.users.GetUserByID(ctx, post.UserID); err != nil {
			return err
		}
		var err error
		created, err = ps.repo.CreatePost(ctx, post)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ps.logger.Info("Post rejected: owner does not exist", map[string]interface{}{
				"user_id": post.UserID,
			})
			return nil, &domain.ValidationError{Fields: validation.MissingOwner(nil)}
		}
		ps.logger.Error("Failed to create post in database", map[string]interface{}{
			"error":  err.Error(),
			"method": "CreatePost",
		})
		return nil, &domain.PersistenceError{Op: "create post", Err: err}
	}

	ps.logger.Info("Post created", map[string]interface{}{
		"id":      created.ID,
		"user_id": created.UserID,
	})
	return created, nil
}

func (ps *PostService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := ps.repo.GetPostByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			ps.logger.Error("Failed to get post", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
		}
		return nil, err
	}
	return post, nil
}

func (ps *PostService) ListPosts(ctx context.Context, q scope.Query) ([]domain.Post, error) {
	posts, err := ps.repo.ListPosts(ctx, q)
	if err != nil {
		ps.logger.Error("Failed to list posts", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, &domain.PersistenceError{Op: "list posts", Err: err}
	}
	return posts, nil
}

// DeletePost removes a single post. It affects no other entity.
func (ps *PostService) DeletePost(ctx context.Context, id int64) error {
	if _, err := ps.repo.GetPostByID(ctx, id); err != nil {
		return err
	}

	err := ps.tx.WithinTx(ctx, func(ctx context.Context) error {
		return ps.repo.DeletePost(ctx, id)
	})
	if err != nil {
		ps.logger.Error("Failed to delete post", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return &domain.PersistenceError{Op: "delete post", Err: err}
	}

	ps.logger.Info("Post deleted", map[string]interface{}{
		"id": id,
	})
	return nil
}

var _ ports.PostService = (*PostService)(nil)
