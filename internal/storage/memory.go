package storage

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Varun5711/devconnect/internal/models/profile"
	"github.com/Varun5711/devconnect/internal/models/user"
)

type MemoryStorage struct {
	mu       sync.RWMutex
	users    map[string]*user.User
	byEmail  map[string]string
	profiles map[string]*profile.Profile

	accesses atomic.Int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[string]*user.User),
		byEmail:  make(map[string]string),
		profiles: make(map[string]*profile.Profile),
	}
}

// Accesses reports how many store operations have run.
func (s *MemoryStorage) Accesses() int64 {
	return s.accesses.Load()
}

func (s *MemoryStorage) touch() {
	s.accesses.Add(1)
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) CreateUser(ctx context.Context, u *user.User) error {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return ErrDuplicateEmail
	}

	c := *u
	s.users[u.ID] = &c
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[email]
	if !exists {
		return nil, ErrNotFound
	}
	c := *s.users[id]
	return &c, nil
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s *MemoryStorage) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*user.User, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*user.User, len(ids))
	for _, id := range ids {
		if u, exists := s.users[id]; exists {
			c := *u
			out[id] = &c
		}
	}
	return out, nil
}

func (s *MemoryStorage) GetProfileByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStorage) GetProfileForUpdate(ctx context.Context, userID string) (*profile.Profile, error) {
	return s.GetProfileByUserID(ctx, userID)
}

func (s *MemoryStorage) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*profile.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *MemoryStorage) SaveProfile(ctx context.Context, p *profile.Profile) error {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[p.UserID] = p.Clone()
	return nil
}

func (s *MemoryStorage) DeleteAccount(ctx context.Context, userID string) error {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[userID]
	if !exists {
		return ErrNotFound
	}
	delete(s.byEmail, u.Email)
	delete(s.users, userID)
	delete(s.profiles, userID)
	return nil
}

func (s *MemoryStorage) DeleteOrphanProfiles(ctx context.Context) (int64, error) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for userID := range s.profiles {
		if _, exists := s.users[userID]; !exists {
			delete(s.profiles, userID)
			removed++
		}
	}
	return removed, nil
}
