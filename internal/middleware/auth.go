package middleware

import (
	"context"
	"net/http"

	"github.com/Varun5711/devconnect/internal/auth"
	"github.com/Varun5711/devconnect/internal/logger"
)

type contextKey string

const UserIDKey contextKey = "user_id"

const (
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	tokens TokenValidator
	header string
	log    *logger.Logger
}

// NewAuthMiddleware reads the raw token from header, without a scheme
// prefix.
func NewAuthMiddleware(tokens TokenValidator, header string, log *logger.Logger) *AuthMiddleware {
	if header == "" {
		header = "x-auth-token"
	}
	return &AuthMiddleware{
		tokens: tokens,
		header: header,
		log:    log,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(m.header)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, msgNoToken)
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			m.log.Debug("Rejected token: %v", err)
			writeMessage(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.User.ID)))
	})
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
