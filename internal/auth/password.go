package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

// Hasher runs bcrypt at a fixed cost with at most maxConcurrent hashes or
// compares in flight.
type Hasher struct {
	cost int
	sem  chan struct{}

	dummyOnce sync.Once
	dummy     string
}

func NewHasher(cost, maxConcurrent int) *Hasher {
	if cost == 0 {
		cost = DefaultCost
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Hasher{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case h.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() {
	<-h.sem
}

func (h *Hasher) HashPassword(ctx context.Context, password string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPassword returns nil when password matches hashedPassword.
func (h *Hasher) CheckPassword(ctx context.Context, hashedPassword, password string) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// DummyHash is compared against when the account does not exist, so unknown
// emails cost the same bcrypt work as wrong passwords.
func (h *Hasher) DummyHash() string {
	h.dummyOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), h.cost)
		if err == nil {
			h.dummy = string(b)
		}
	})
	return h.dummy
}
