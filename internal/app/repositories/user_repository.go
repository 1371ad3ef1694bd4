package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classboard/classboard/internal/app/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts the user or refreshes its profile fields. Accounts come
// from the OAuth provider, so the id is stable across logins while name and
// avatar may change.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns("id", "name", "avatar_url").
		Values(user.ID, user.Name, user.AvatarURL).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = excluded.name, avatar_url = excluded.avatar_url").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID, nil when the user does not exist
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := squirrel.Select("id", "name", "avatar_url").
		From("users").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.Name, &user.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &user, nil
}
