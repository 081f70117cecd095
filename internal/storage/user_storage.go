package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	usermodel "github.com/Varun5711/devconnect/internal/models/user"
)

func (s *PostgresStorage) CreateUser(ctx context.Context, u *usermodel.User) error {
	query := `
		INSERT INTO users (id, name, email, avatar, password_hash, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Write().Exec(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.Avatar,
		u.PasswordHash,
		u.Date,
	)

	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail reads from the primary so a just-registered account is
// visible to the duplicate check and to login.
func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	query := `
		SELECT id, name, email, avatar, password_hash, date
		FROM users
		WHERE email = $1
	`

	var user usermodel.User
	err := s.db.ReadOwn().QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Avatar,
		&user.PasswordHash,
		&user.Date,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrNotFound
	}

	query := `
		SELECT id, name, email, avatar, date
		FROM users
		WHERE id = $1
	`

	var user usermodel.User
	err := s.db.Read().QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Avatar,
		&user.Date,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
