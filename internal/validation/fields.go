package validation

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldError is one rejected request field, shaped like {"msg":..,"param":..}.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// Errors collects every violation of a request so they can be reported in
// one response.
type Errors struct {
	list []FieldError
}

func (e *Errors) Add(param, msg string) {
	e.list = append(e.list, FieldError{Msg: msg, Param: param})
}

func (e *Errors) Required(param, value, msg string) {
	if strings.TrimSpace(value) == "" {
		e.Add(param, msg)
	}
}

func (e *Errors) Email(param, value, msg string) {
	if !IsEmail(value) {
		e.Add(param, msg)
	}
}

// MinLength counts characters, not bytes.
func (e *Errors) MinLength(param, value string, n int, msg string) {
	if utf8.RuneCountInString(value) < n {
		e.Add(param, msg)
	}
}

// MaxBytes bounds the encoded size of value.
func (e *Errors) MaxBytes(param, value string, n int, msg string) {
	if len(value) > n {
		e.Add(param, msg)
	}
}

// Date records msg when value is set but cannot be parsed.
func (e *Errors) Date(param, value, msg string) {
	if value == "" {
		return
	}
	if _, err := ParseDate(value); err != nil {
		e.Add(param, msg)
	}
}

func (e *Errors) Check(param string, err error) {
	if err != nil {
		e.Add(param, err.Error())
	}
}

func (e *Errors) Empty() bool {
	return len(e.list) == 0
}

func (e *Errors) List() []FieldError {
	return e.list
}

// IsEmail accepts a bare addr-spec only; display names like
// "Ann <ann@x.com>" are rejected.
func IsEmail(value string) bool {
	if value == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	return addr.Address == value && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".")
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate accepts YYYY-MM-DD or RFC3339 timestamps.
func ParseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
