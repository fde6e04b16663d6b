package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/ports"
	"blogsvc/internal/core/scope"
	"blogsvc/internal/core/validation"

	"github.com/go-playground/validator/v10"
)

const userCacheTTL = 15 * time.Minute

// UserService coordinates the user lifecycle: validate-then-persist on the
// write paths and the cascade removal of owned posts on delete.
type UserService struct {
	repo     ports.UserRepository
	posts    ports.PostRepository
	tx       ports.TxManager
	logger   ports.LoggerPort
	validate *validator.Validate
	cache    ports.CachePort
}

func NewUserService(
	repo ports.UserRepository,
	posts ports.PostRepository,
	tx ports.TxManager,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *UserService {
	return &UserService{
		repo:     repo,
		posts:    posts,
		tx:       tx,
		logger:   logger,
		validate: validate,
		cache:    cache,
	}
}

func (us *UserService) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.UserType == "" {
		user.UserType = domain.Regular
	}

	if errs := validation.ValidateUser(us.validate, user, validation.ModeCreate); errs.Any() {
		us.logger.Info("User rejected by validation", map[string]interface{}{
			"errors": errs,
			"method": "CreateUser",
		})
		return nil, &domain.ValidationError{Fields: errs}
	}

	var created *domain.User
	err := us.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = us.repo.CreateUser(ctx, user)
		return err
	})
	if err != nil {
		us.logger.Error("Failed to create user in database", map[string]interface{}{
			"error":  err.Error(),
			"method": "CreateUser",
		})
		return nil, &domain.PersistenceError{Op: "create user", Err: err}
	}

	us.logger.Info("User created", map[string]interface{}{
		"id": created.ID,
	})
	return created, nil
}

func (us *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	cacheKey := fmt.Sprintf("user:%d", id)
	if cachedData, err := us.cache.Get(cacheKey); err == nil {
		var cachedUser domain.User
		if err := json.Unmarshal(cachedData, &cachedUser); err == nil {
			us.logger.Debug("User found in cache", map[string]interface{}{
				"id": id,
			})
			return &cachedUser, nil
		}
	}

	user, err := us.repo.GetUserByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			us.logger.Error("Failed to get user", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
		}
		return nil, err
	}

	if userData, err := json.Marshal(user); err == nil {
		if err := us.cache.Set(cacheKey, userData, userCacheTTL); err != nil {
			us.logger.Warn("Failed to cache user", map[string]interface{}{
				"error": err.Error(),
				"id":    id,
			})
		}
	}

	return user, nil
}

// UpdateUser persists the given state for an existing user. The age rule
// is a create-time rule and is not re-checked here.
func (us *UserService) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := us.repo.GetUserByID(ctx, user.ID); err != nil {
		return nil, err
	}

	if errs := validation.ValidateUser(us.validate, user, validation.ModeUpdate); errs.Any() {
		us.logger.Info("User update rejected by validation", map[string]interface{}{
			"errors": errs,
			"id":     user.ID,
		})
		return nil, &domain.ValidationError{Fields: errs}
	}

	var updated *domain.User
	err := us.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = us.repo.UpdateUser(ctx, user)
		return err
	})
	if err != nil {
		us.logger.Error("Failed to update user", map[string]interface{}{
			"id":    user.ID,
			"error": err.Error(),
		})
		return nil, &domain.PersistenceError{Op: "update user", Err: err}
	}

	us.invalidate(user.ID)
	return updated, nil
}

// DeleteUser removes the user and every post it owns inside one
// transaction. No post may outlive its owner: if any dependent delete
// fails, the whole unit rolls back and the user survives. The returned
// count is the number of posts removed.
func (us *UserService) DeleteUser(ctx context.Context, id int64) (int, error) {
	if _, err := us.repo.GetUserByID(ctx, id); err != nil {
		return 0, err
	}

	deleted := 0
	err := us.tx.WithinTx(ctx, func(ctx context.Context) error {
		owned, err := us.posts.ListPostsByUser(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range owned {
			if err := us.posts.DeletePost(ctx, p.ID); err != nil {
				return err
			}
			deleted++
		}
		return us.repo.DeleteUser(ctx, id)
	})
	if err != nil {
		us.logger.Error("Cascade delete failed, rolled back", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return 0, &domain.PersistenceError{Op: "delete user", Err: err}
	}

	us.invalidate(id)
	us.logger.Info("User deleted", map[string]interface{}{
		"id":            id,
		"deleted_posts": deleted,
	})
	return deleted, nil
}

func (us *UserService) ListUsers(ctx context.Context, q scope.Query) ([]domain.User, error) {
	users, err := us.repo.ListUsers(ctx, q)
	if err != nil {
		us.logger.Error("Failed to list users", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, &domain.PersistenceError{Op: "list users", Err: err}
	}
	return users, nil
}

func (us *UserService) CountUsers(ctx context.Context, q scope.Query) (int64, error) {
	n, err := us.repo.CountUsers(ctx, q)
	if err != nil {
		us.logger.Error("Failed to count users", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, &domain.PersistenceError{Op: "count users", Err: err}
	}
	return n, nil
}

func (us *UserService) invalidate(id int64) {
	cacheKey := fmt.Sprintf("user:%d", id)
	if err := us.cache.Delete(cacheKey); err != nil {
		us.logger.Warn("Failed to invalidate user cache", map[string]interface{}{
			"error": err.Error(),
			"id":    id,
		})
	}
}

var _ ports.UserService = (*UserService)(nil)
