package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIsEmail(t *testing.T) {
	valid := []string{
		"ann@x.com",
		"first.last@example.co.uk",
		"user+tag@domain.io",
	}
	for _, email := range valid {
		if !IsEmail(email) {
			t.Errorf("expected '%s' to be valid", email)
		}
	}

	invalid := []string{
		"",
		"ann",
		"ann@",
		"@x.com",
		"ann@localhost",
		"Ann <ann@x.com>",
		"ann @x.com",
	}
	for _, email := range invalid {
		if IsEmail(email) {
			t.Errorf("expected '%s' to be invalid", email)
		}
	}
}

func TestErrors_Aggregates(t *testing.T) {
	var errs Errors

	errs.Required("name", "  ", "Name is required")
	errs.Email("email", "nope", "Please include a valid email")
	errs.MinLength("password", "123", 6, "Please enter a password with 6 or more characters")

	if errs.Empty() {
		t.Fatal("expected errors to be collected")
	}

	list := errs.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(list))
	}

	want := []FieldError{
		{Msg: "Name is required", Param: "name"},
		{Msg: "Please include a valid email", Param: "email"},
		{Msg: "Please enter a password with 6 or more characters", Param: "password"},
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("error %d: expected %+v, got %+v", i, want[i], list[i])
		}
	}
}

func TestErrors_PassingChecksAddNothing(t *testing.T) {
	var errs Errors

	errs.Required("name", "Ann", "Name is required")
	errs.Email("email", "ann@x.com", "Please include a valid email")
	errs.MinLength("password", "secret1", 6, "too short")
	errs.Date("to", "", "bad date")
	errs.Check("handle", nil)

	if !errs.Empty() {
		t.Errorf("expected no errors, got %+v", errs.List())
	}
}

func TestErrors_MinLengthCountsCharacters(t *testing.T) {
	var errs Errors

	errs.MinLength("password", "ééé", 6, "too short")
	errs.MinLength("password", "éééééé", 6, "too short")

	if len(errs.List()) != 1 {
		t.Fatalf("expected only the 3 character value to fail, got %+v", errs.List())
	}
}

func TestErrors_MaxBytes(t *testing.T) {
	var errs Errors

	errs.MaxBytes("password", strings.Repeat("a", 72), 72, "too long")
	if !errs.Empty() {
		t.Fatalf("expected 72 bytes to pass, got %+v", errs.List())
	}

	errs.MaxBytes("password", strings.Repeat("é", 37), 72, "too long")
	if len(errs.List()) != 1 {
		t.Errorf("expected 74 bytes to fail, got %+v", errs.List())
	}
}

func TestErrors_Check(t *testing.T) {
	var errs Errors
	errs.Check("handle", errors.New("Handle is reserved and cannot be used"))

	if errs.Empty() || errs.List()[0].Param != "handle" {
		t.Errorf("expected handle error, got %+v", errs.List())
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2020-01-15", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2020-01-15T10:30:00Z", time.Date(2020, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2020-01-15T12:30:00+02:00", time.Date(2020, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"15/01/2020", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.ok && err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseDate(%q) expected error", tt.in)
			continue
		}
		if tt.ok && !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
