package validation

import (
	"testing"
)

func TestValidateHandle_Valid(t *testing.T) {
	validHandles := []string{
		"ann",
		"ann-dev",
		"ann_dev",
		"AnnDev123",
		"123ann",
	}

	for _, handle := range validHandles {
		if err := ValidateHandle(handle); err != nil {
			t.Errorf("expected '%s' to be valid, got error: %v", handle, err)
		}
	}
}

func TestValidateHandle_TooShort(t *testing.T) {
	for _, handle := range []string{"a", "ab", ""} {
		if err := ValidateHandle(handle); err != ErrHandleTooShort {
			t.Errorf("expected ErrHandleTooShort for '%s', got: %v", handle, err)
		}
	}
}

func TestValidateHandle_TooLong(t *testing.T) {
	longHandle := "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"

	if err := ValidateHandle(longHandle); err != ErrHandleTooLong {
		t.Errorf("expected ErrHandleTooLong, got: %v", err)
	}
}

func TestValidateHandle_InvalidChars(t *testing.T) {
	invalidHandles := []string{
		"ann dev",
		"ann.dev",
		"ann@dev",
		"ann/dev",
	}

	for _, handle := range invalidHandles {
		if err := ValidateHandle(handle); err != ErrHandleInvalidChars {
			t.Errorf("expected ErrHandleInvalidChars for '%s', got: %v", handle, err)
		}
	}
}

func TestValidateHandle_Reserved(t *testing.T) {
	for _, handle := range []string{"api", "API", "docs", "Profile", "github"} {
		if err := ValidateHandle(handle); err != ErrHandleReserved {
			t.Errorf("expected ErrHandleReserved for '%s', got: %v", handle, err)
		}
	}
}
