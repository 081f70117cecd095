package storage

import (
	"context"
	"errors"

	"github.com/Varun5711/devconnect/internal/models/profile"
	"github.com/Varun5711/devconnect/internal/models/user"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserStore interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserByID(ctx context.Context, id string) (*user.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*user.User, error)
}

type ProfileStore interface {
	GetProfileByUserID(ctx context.Context, userID string) (*profile.Profile, error)
	// GetProfileForUpdate is GetProfileByUserID without replica lag, for
	// read-modify-write paths.
	GetProfileForUpdate(ctx context.Context, userID string) (*profile.Profile, error)
	ListProfiles(ctx context.Context) ([]*profile.Profile, error)
	// SaveProfile inserts or replaces the profile owned by p.UserID.
	SaveProfile(ctx context.Context, p *profile.Profile) error
	DeleteOrphanProfiles(ctx context.Context) (int64, error)
}

type Store interface {
	UserStore
	ProfileStore
	// DeleteAccount removes the user and its profile together. A missing
	// profile is not an error.
	DeleteAccount(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
}
