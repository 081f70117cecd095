package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	usermodel "github.com/Varun5711/devconnect/internal/models/user"
)

// GetUsersByIDs batch-loads the owners of a page of profiles. Unknown and
// malformed ids are skipped.
func (s *PostgresStorage) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*usermodel.User, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}

	users := make(map[string]*usermodel.User, len(valid))
	if len(valid) == 0 {
		return users, nil
	}

	query := `
		SELECT id, name, email, avatar, date
		FROM users
		WHERE id = ANY($1::uuid[])
	`

	rows, err := s.db.Read().Query(ctx, query, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user usermodel.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Avatar,
			&user.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		users[user.ID] = &user
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

func (s *PostgresStorage) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrNotFound
	}

	return pgx.BeginFunc(ctx, s.db.Write(), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteOrphanProfiles removes profiles whose owner no longer exists. These
// appear when an upsert races an account deletion.
func (s *PostgresStorage) DeleteOrphanProfiles(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM profiles p
		WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = p.user_id)
	`

	cmdTag, err := s.db.Write().Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphan profiles: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

var _ Store = (*PostgresStorage)(nil)
var _ Store = (*MemoryStorage)(nil)
