package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Varun5711/devconnect/internal/validation"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindUnauthorized
	KindNotFound
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

const (
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserNotFound       = "User not found"
	MsgNoProfile          = "There is no profile for this user"
	MsgProfileNotFound    = "Profile not found"
	MsgNoGithubProfile    = "No Github profile found"
	MsgServerError        = "Server error"
	MsgUserDeleted        = "User deleted"
)

// Error is the failure type every service method returns. Messages are safe
// to show to clients; Err carries the internal cause for logs only.
type Error struct {
	Kind     Kind
	Messages []validation.FieldError
	// Flat asks for a single {"msg":...} body instead of an errors list.
	Flat bool
	Err  error
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		msgs = append(msgs, m.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, strings.Join(msgs, "; "), e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Messages: []validation.FieldError{{Msg: msg}}}
}

func ValidationFailed(errs *validation.Errors) *Error {
	return &Error{Kind: KindValidation, Messages: errs.List()}
}

func Conflict(msg string) *Error {
	return newError(KindConflict, msg)
}

func NotFound(msg string) *Error {
	return newError(KindNotFound, msg)
}

func Internal(err error) *Error {
	e := newError(KindInternal, MsgServerError)
	e.Err = err
	return e
}

// invalidCredentials is shared by every login failure so unknown emails and
// wrong passwords produce identical responses.
func invalidCredentials() *Error {
	return newError(KindValidation, MsgInvalidCredentials)
}

// KindOf returns the Kind of a service error, or KindInternal for anything
// else.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
