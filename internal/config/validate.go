package config

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const minSecretLen = 16

var (
	ErrSecretRequired = errors.New("JWT_SECRET is required")
	ErrSecretTooShort = errors.New("JWT_SECRET too short")
	ErrDSNRequired    = errors.New("DB_PRIMARY_DSN is required for the postgres store")
)

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrSecretRequired
	}
	if len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, minSecretLen)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %v", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Auth.BcryptMaxConcurrency < 1 {
		c.Auth.BcryptMaxConcurrency = 1
	}
	switch c.Server.StoreDriver {
	case "postgres":
		if c.Database.PrimaryDSN == "" {
			return ErrDSNRequired
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Server.StoreDriver)
	}
	return nil
}
