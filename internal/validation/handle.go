package validation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrHandleTooShort     = errors.New("Handle must be at least 3 characters")
	ErrHandleTooLong      = errors.New("Handle must be at most 40 characters")
	ErrHandleInvalidChars = errors.New("Handle can only contain letters, numbers, hyphens, and underscores")
	ErrHandleReserved     = errors.New("Handle is reserved and cannot be used")
)

// Profile handles share the URL space with the API routes.
var reservedHandles = map[string]bool{
	"api":      true,
	"admin":    true,
	"health":   true,
	"docs":     true,
	"me":       true,
	"user":     true,
	"users":    true,
	"profile":  true,
	"profiles": true,
	"auth":     true,
	"login":    true,
	"logout":   true,
	"register": true,
	"github":   true,
	"static":   true,
	"assets":   true,
	"favicon":  true,
	"robots":   true,
}

var handleRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateHandle(handle string) error {
	if len(handle) < 3 {
		return ErrHandleTooShort
	}
	if len(handle) > 40 {
		return ErrHandleTooLong
	}

	if !handleRegex.MatchString(handle) {
		return ErrHandleInvalidChars
	}

	if reservedHandles[strings.ToLower(handle)] {
		return ErrHandleReserved
	}

	return nil
}
