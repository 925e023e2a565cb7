package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pelmenoff/m2-hw12/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, email, hashed_password, created_at
			  FROM users WHERE email = $1`

	err := r.db.executor(ctx).QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (email, hashed_password)
			  VALUES ($1, $2)
			  RETURNING id, email, hashed_password, created_at`

	var savedUser model.User
	err := r.db.executor(ctx).QueryRowContext(ctx, query, user.Email, user.HashedPassword).Scan(
		&savedUser.ID, &savedUser.Email, &savedUser.HashedPassword, &savedUser.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}
