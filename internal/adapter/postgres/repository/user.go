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

type PostgresUserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db,
	}
}

const userColumns = `id, name, email, age, first_name, last_name, birth_date, user_type, active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	user := &domain.User{}
	var age sql.NullInt64
	var birthDate sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&age,
		&user.FirstName,
		&user.LastName,
		&birthDate,
		&user.UserType,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if age.Valid {
		v := int(age.Int64)
		user.Age = &v
	}
	if birthDate.Valid {
		t := birthDate.Time
		user.BirthDate = &t
	}
	return user, nil
}

func nullableAge(age *int) any {
	if age == nil {
		return nil
	}
	return *age
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (name, email, age, first_name, last_name, birth_date, user_type, active)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id, created_at, updated_at`

	err := dbtx(ctx, r.db).QueryRowContext(ctx, query,
		user.Name, user.Email, nullableAge(user.Age), user.FirstName,
		user.LastName, user.BirthDate, user.UserType, user.Active,
	).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23502" {
			return nil, fmt.Errorf("required field is missing")
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(dbtx(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `UPDATE users
        SET
        name = $1,
        email = $2,
        age = $3,
        first_name = $4,
        last_name = $5,
        birth_date = $6,
        user_type = $7,
        active = $8,
        updated_at = CURRENT_TIMESTAMP
        WHERE id = $9
        RETURNING ` + userColumns

	updated, err := scanUser(dbtx(ctx, r.db).QueryRowContext(ctx, query,
		user.Name, user.Email, nullableAge(user.Age), user.FirstName,
		user.LastName, user.BirthDate, user.UserType, user.Active, user.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}

func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

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

func (r *PostgresUserRepository) ListUsers(ctx context.Context, q scope.Query) ([]domain.User, error) {
	clause, args, err := compileScope(q, userScopeColumns)
	if err != nil {
		return nil, err
	}

	rows, err := dbtx(ctx, r.db).QueryContext(ctx, `SELECT `+userColumns+` FROM users`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepository) CountUsers(ctx context.Context, q scope.Query) (int64, error) {
	clause, args, err := compileScopeCount(q, userScopeColumns)
	if err != nil {
		return 0, err
	}

	var n int64
	err = dbtx(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+clause, args...).Scan(&n)
	return n, err
}
