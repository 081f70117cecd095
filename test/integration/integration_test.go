package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	apiURL           = getEnv("API_URL", "http://localhost:5000")
	testUserEmail    = fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
	testUserPassword = "testPassword123"
	authToken        string
	userID           string
	experienceID     string
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		fmt.Println("Skipping integration tests. Set INTEGRATION_TEST=true to run.")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func call(t *testing.T, method, path string, payload interface{}) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, apiURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("x-auth-token", authToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func TestHealthCheck(t *testing.T) {
	status, _ := call(t, http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
}

func TestUserRegistration(t *testing.T) {
	status, raw := call(t, http.MethodPost, "/api/users", map[string]string{
		"email":    testUserEmail,
		"password": testUserPassword,
		"name":     "Test User",
	})
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, raw)
	}

	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	authToken = result["token"]
	if authToken == "" {
		t.Fatal("expected token in response")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	status, raw := call(t, http.MethodPost, "/api/users", map[string]string{
		"email":    testUserEmail,
		"password": testUserPassword,
		"name":     "Test User",
	})
	if status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d: %s", status, raw)
	}
}

func TestUserLogin(t *testing.T) {
	status, raw := call(t, http.MethodPost, "/api/auth", map[string]string{
		"email":    testUserEmail,
		"password": testUserPassword,
	})
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, raw)
	}

	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["token"] == "" {
		t.Error("expected token in response")
	}
}

func TestInvalidLogin(t *testing.T) {
	status, _ := call(t, http.MethodPost, "/api/auth", map[string]string{
		"email":    testUserEmail,
		"password": "wrongpassword",
	})
	if status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", status)
	}
}

func TestCurrentUser(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	status, raw := call(t, http.MethodGet, "/api/auth", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, raw)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := result["password"]; ok {
		t.Error("password must not be returned")
	}
	userID, _ = result["_id"].(string)
}

func TestUpsertProfile(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	status, raw := call(t, http.MethodPost, "/api/profile", map[string]string{
		"status": "Developer",
		"skills": "go, postgres, redis",
		"bio":    "integration test",
	})
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, raw)
	}

	var result map[string]interface{}
	json.Unmarshal(raw, &result)
	skills, _ := result["skills"].([]interface{})
	if len(skills) != 3 {
		t.Errorf("expected 3 skills, got %v", result["skills"])
	}
}

func TestPublicProfile(t *testing.T) {
	if userID == "" {
		t.Skip("no user id available")
	}

	status, raw := call(t, http.MethodGet, "/api/profile/user/"+userID, nil)
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d: %s", status, raw)
	}
}

func TestAddExperience(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	status, raw := call(t, http.MethodPut, "/api/profile/experience", map[string]string{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01",
	})
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, raw)
	}

	var result struct {
		Experience []struct {
			ID string `json:"_id"`
		} `json:"experience"`
	}
	json.Unmarshal(raw, &result)
	if len(result.Experience) != 1 {
		t.Fatalf("expected 1 experience entry, got %d", len(result.Experience))
	}
	experienceID = result.Experience[0].ID
}

func TestRemoveExperience(t *testing.T) {
	if experienceID == "" {
		t.Skip("no experience id available")
	}

	status, raw := call(t, http.MethodDelete, "/api/profile/experience/"+experienceID, nil)
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d: %s", status, raw)
	}
}

func TestUnauthorizedAccess(t *testing.T) {
	saved := authToken
	authToken = ""
	defer func() { authToken = saved }()

	status, _ := call(t, http.MethodGet, "/api/profile/me", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", status)
	}
}

func TestDeleteAccount(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	status, raw := call(t, http.MethodDelete, "/api/profile", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", status, raw)
	}

	status, _ = call(t, http.MethodGet, "/api/auth", nil)
	if status != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", status)
	}
}
