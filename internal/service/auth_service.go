package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Varun5711/devconnect/internal/auth"
	"github.com/Varun5711/devconnect/internal/events"
	"github.com/Varun5711/devconnect/internal/lock"
	"github.com/Varun5711/devconnect/internal/logger"
	usermodel "github.com/Varun5711/devconnect/internal/models/user"
	"github.com/Varun5711/devconnect/internal/storage"
	"github.com/Varun5711/devconnect/internal/validation"
)

const (
	minPasswordLength = 6
	// bcrypt rejects longer input
	maxPasswordBytes = 72
)

type EventPublisher interface {
	Publish(ctx context.Context, event *events.AccountEvent) error
}

type KeyLocker interface {
	TryLock(ctx context.Context, key string) (func(), error)
}

type AuthService struct {
	users      storage.UserStore
	hasher     *auth.Hasher
	jwtManager *auth.JWTManager
	locker     KeyLocker
	events     EventPublisher
	log        *logger.Logger
	now        func() time.Time
}

// NewAuthService wires the registration and login flows. locker and
// publisher may be nil.
func NewAuthService(users storage.UserStore, hasher *auth.Hasher, jwtManager *auth.JWTManager, locker KeyLocker, publisher EventPublisher, log *logger.Logger) *AuthService {
	return &AuthService{
		users:      users,
		hasher:     hasher,
		jwtManager: jwtManager,
		locker:     locker,
		events:     publisher,
		log:        log,
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *usermodel.CreateUserRequest) (*usermodel.AuthResponse, error) {
	var errs validation.Errors
	errs.Required("name", req.Name, "Name is required")
	errs.Email("email", req.Email, "Please include a valid email")
	errs.MinLength("password", req.Password, minPasswordLength, "Please enter a password with 6 or more characters")
	errs.MaxBytes("password", req.Password, maxPasswordBytes, "Please enter a password of 72 bytes or fewer")
	if !errs.Empty() {
		return nil, ValidationFailed(&errs)
	}

	if s.locker != nil {
		release, err := s.locker.TryLock(ctx, req.Email)
		defer release()
		if errors.Is(err, lock.ErrLockNotAcquired) {
			return nil, Conflict(MsgUserExists)
		}
		if err != nil {
			// the unique index on email still guards the insert
			s.log.Warn("Registration lock unavailable: %v", err)
		}
	}

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, Conflict(MsgUserExists)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, s.internal("lookup user", err)
	}

	passwordHash, err := s.hasher.HashPassword(ctx, req.Password)
	if err != nil {
		return nil, s.internal("hash password", err)
	}

	user := &usermodel.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Avatar:       usermodel.GravatarURL(req.Email),
		PasswordHash: passwordHash,
		Date:         s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, Conflict(MsgUserExists)
		}
		return nil, s.internal("create user", err)
	}

	publish(ctx, s.events, s.log, events.NewAccountEvent(events.UserRegistered, user.ID))

	// the account stays created if signing fails
	return s.issue(user.ID)
}

func (s *AuthService) Login(ctx context.Context, req *usermodel.LoginRequest) (*usermodel.AuthResponse, error) {
	var errs validation.Errors
	errs.Email("email", req.Email, "Please include a valid email")
	errs.Required("password", req.Password, "Password is required")
	if !errs.Empty() {
		return nil, ValidationFailed(&errs)
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, s.internal("lookup user", err)
	}

	hash := s.hasher.DummyHash()
	if user != nil {
		hash = user.PasswordHash
	}

	if err := s.hasher.CheckPassword(ctx, hash, req.Password); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, s.internal("verify password", ctxErr)
		}
		return nil, invalidCredentials()
	}
	if user == nil {
		return nil, invalidCredentials()
	}

	return s.issue(user.ID)
}

// CurrentUser loads the authenticated user. The password hash never leaves
// the model's JSON encoding.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*usermodel.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, NotFound(MsgUserNotFound)
	}
	if err != nil {
		return nil, s.internal("get user", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) issue(userID string) (*usermodel.AuthResponse, error) {
	token, expiresAt, err := s.jwtManager.GenerateToken(userID)
	if err != nil {
		return nil, s.internal("sign token", err)
	}
	return &usermodel.AuthResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func publish(ctx context.Context, p EventPublisher, log *logger.Logger, event *events.AccountEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish %s event: %v", event.Type, err)
	}
}

func (s *AuthService) internal(op string, err error) *Error {
	s.log.Error("%s failed: %v", op, err)
	return Internal(err)
}
