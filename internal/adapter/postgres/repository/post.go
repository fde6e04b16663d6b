package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/scope"

	"github.com/lib/pq"
)

type PostgresPostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{
		db,
	}
}

const postColumns = `id, title, content, published, user_id, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*domain.Post, error) {
	post := &domain.Post{}
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.UserID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `INSERT INTO posts (title, content, published, user_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id, created_at, updated_at`

	err := dbtx(ctx, r.db).QueryRowContext(ctx, query,
		post.Title, post.Content, post.Published, post.UserID,
	).Scan(
		&post.ID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				// FK backstop; the coordinator checks the owner first.
				return nil, domain.ErrNotFound
			case "23502":
				return nil, fmt.Errorf("required field is missing")
			}
		}
		return nil, err
	}
	return post, nil
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(dbtx(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostgresPostRepository) ListPosts(ctx context.Context, q scope.Query) ([]domain.Post, error) {
	clause, args, err := compileScope(q, postScopeColumns)
	if err != nil {
		return nil, err
	}

	rows, err := dbtx(ctx, r.db).QueryContext(ctx, `SELECT `+postColumns+` FROM posts`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (r *PostgresPostRepository) ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	return r.ListPosts(ctx, scope.Query{Conds: []scope.Cond{{Field: "user_id", Value: userID}}})
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := dbtx(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
