package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Varun5711/devconnect/internal/database"
	"github.com/Varun5711/devconnect/internal/models/profile"
)

const uniqueViolation = "23505"

type PostgresStorage struct {
	db *database.DBManager
}

func NewPostgresStorage(db *database.DBManager) *PostgresStorage {
	return &PostgresStorage{
		db: db,
	}
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.Primary().Ping(ctx)
}

const profileColumns = `
	id, user_id, handle, company, website, location, bio, status, skills,
	githubusername, social, experience, education, date
`

func (s *PostgresStorage) GetProfileByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	return s.getProfile(ctx, s.db.Read(), userID)
}

// GetProfileForUpdate reads from the primary so a profile created moments
// ago is not mistaken for a missing one.
func (s *PostgresStorage) GetProfileForUpdate(ctx context.Context, userID string) (*profile.Profile, error) {
	return s.getProfile(ctx, s.db.ReadOwn(), userID)
}

func (s *PostgresStorage) getProfile(ctx context.Context, pool *pgxpool.Pool, userID string) (*profile.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrNotFound
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	p, err := scanProfile(pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

func (s *PostgresStorage) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY date ASC`

	rows, err := s.db.Read().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return profiles, nil
}

func (s *PostgresStorage) SaveProfile(ctx context.Context, p *profile.Profile) error {
	social, err := json.Marshal(p.Social)
	if err != nil {
		return fmt.Errorf("failed to encode social: %w", err)
	}
	experience, err := json.Marshal(p.Experience)
	if err != nil {
		return fmt.Errorf("failed to encode experience: %w", err)
	}
	education, err := json.Marshal(p.Education)
	if err != nil {
		return fmt.Errorf("failed to encode education: %w", err)
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			handle = EXCLUDED.handle,
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			status = EXCLUDED.status,
			skills = EXCLUDED.skills,
			githubusername = EXCLUDED.githubusername,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = NOW()
	`

	_, err = s.db.Write().Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Handle,
		p.Company,
		p.Website,
		p.Location,
		p.Bio,
		p.Status,
		p.Skills,
		p.GitHubUsername,
		social,
		experience,
		education,
		p.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var (
		p                             profile.Profile
		social, experience, education []byte
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Handle,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Bio,
		&p.Status,
		&p.Skills,
		&p.GitHubUsername,
		&social,
		&experience,
		&education,
		&p.Date,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeJSONB(social, &p.Social); err != nil {
		return nil, fmt.Errorf("decode social: %w", err)
	}
	if err := decodeJSONB(experience, &p.Experience); err != nil {
		return nil, fmt.Errorf("decode experience: %w", err)
	}
	if err := decodeJSONB(education, &p.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}

	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []profile.Experience{}
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}

	return &p, nil
}

func decodeJSONB(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
