package user

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestGravatarURL(t *testing.T) {
	// md5("myemailaddress@example.com")
	want := "//www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?s=200&r=pg&d=mm"

	if got := GravatarURL("myemailaddress@example.com"); got != want {
		t.Errorf("GravatarURL() = %s, want %s", got, want)
	}
}

func TestGravatarURL_NormalisesEmail(t *testing.T) {
	a := GravatarURL("  MyEmailAddress@example.com ")
	b := GravatarURL("myemailaddress@example.com")

	if a != b {
		t.Errorf("expected case and whitespace to be ignored: %s != %s", a, b)
	}
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	u := &User{
		ID:           "u1",
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "$2a$10$secret",
		Date:         time.Now(),
	}

	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(string(b), "secret") || strings.Contains(string(b), "password") {
		t.Errorf("password hash leaked into JSON: %s", b)
	}
}
