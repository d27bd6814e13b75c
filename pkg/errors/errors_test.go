package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeParse, "pin %d missing type id", 3)
	want := "PARSE_ERROR: pin 3 missing type id"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := Wrap(ErrCodePersistence, stderrors.New("disk full"), "save config")
	if !strings.Contains(wrapped.Error(), "disk full") {
		t.Errorf("wrapped error should include cause: %q", wrapped.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeParse, "bad document")
	if !Is(err, ErrCodeParse) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodePersistence) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeParse) {
		t.Error("Is() should not match a plain error")
	}

	// Code survives wrapping with %w.
	outer := fmt.Errorf("context: %w", err)
	if !Is(outer, ErrCodeParse) {
		t.Error("Is() should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeFileNotFound, "gone")); got != ErrCodeFileNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeFileNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodePersistence, stderrors.New("io fail"), "save config")
	if got := UserMessage(err); got != "save config" {
		t.Errorf("UserMessage() = %q, want %q", got, "save config")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() on plain error = %q", got)
	}
}

func TestValidateEntryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Basic Industrial Facility", false},
		{"unicode", "Wasserstoffé", false},
		{"empty", "", true},
		{"control char", "bad\x00name", true},
		{"newline", "two\nlines", true},
		{"too long", strings.Repeat("x", 129), true},
		{"max length ok", strings.Repeat("x", 128), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntryName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("validation error should carry INVALID_NAME, got %v", err)
			}
		})
	}
}
