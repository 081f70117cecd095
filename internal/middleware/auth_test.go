package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Varun5711/devconnect/internal/auth"
	"github.com/Varun5711/devconnect/internal/logger"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, *auth.JWTManager) {
	t.Helper()
	jwtManager := auth.NewJWTManager("0123456789abcdef0123", time.Hour)
	log := logger.NewWithWriter("test", io.Discard, logger.ERROR)
	return NewAuthMiddleware(jwtManager, "x-auth-token", log), jwtManager
}

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("expected user id in context")
		}
		w.Write([]byte(id))
	})
}

func decodeMsg(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp messageResponse
	if err := json.Unmarshal(body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body %q: %v", body.String(), err)
	}
	return resp.Msg
}

func TestRequireAuth_MissingToken(t *testing.T) {
	m, _ := newTestAuth(t)
	called := false
	h := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMsg(t, rec.Body); msg != "No token, authorization denied" {
		t.Errorf("unexpected message %q", msg)
	}
	if called {
		t.Error("next handler must not run")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	m, _ := newTestAuth(t)
	h := m.RequireAuth(echoUser(t))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("x-auth-token", "not.a.token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMsg(t, rec.Body); msg != "Token is not valid" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestRequireAuth_BearerPrefixRejected(t *testing.T) {
	m, jwtManager := newTestAuth(t)
	token, _, err := jwtManager.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("x-auth-token", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.RequireAuth(echoUser(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m, jwtManager := newTestAuth(t)
	token, _, err := jwtManager.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set("x-auth-token", token)
	rec := httptest.NewRecorder()
	m.RequireAuth(echoUser(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "user-1" {
		t.Errorf("expected user-1, got %q", rec.Body.String())
	}
}

func TestRequireAuth_CustomHeader(t *testing.T) {
	jwtManager := auth.NewJWTManager("0123456789abcdef0123", time.Hour)
	m := NewAuthMiddleware(jwtManager, "X-Token", logger.NewWithWriter("test", io.Discard, logger.ERROR))
	token, _, _ := jwtManager.GenerateToken("user-2")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Token", token)
	rec := httptest.NewRecorder()
	m.RequireAuth(echoUser(t)).ServeHTTP(rec, req)

	if rec.Body.String() != "user-2" {
		t.Errorf("expected user-2, got %q", rec.Body.String())
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := UserIDFromContext(req.Context()); ok {
		t.Error("expected no user id")
	}
}
