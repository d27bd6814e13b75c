package cli

import (
	"testing"

	"github.com/piview/piview/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"svg", "png", "dot"} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%q) = %v, want nil", format, err)
		}
	}

	for _, format := range []string{"", "pdf", "SVG", "jpeg"} {
		err := validateFormat(format)
		if err == nil {
			t.Errorf("validateFormat(%q) should fail", format)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("validateFormat(%q) error should carry INVALID_FORMAT, got %v", format, err)
		}
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input  string
		format string
		want   string
	}{
		{"colony.json", "svg", "colony.svg"},
		{"colony.json", "png", "colony.png"},
		{"path/to/colony.json", "dot", "path/to/colony.dot"},
		{"noext", "svg", "noext.svg"},
	}
	for _, tt := range tests {
		if got := defaultOutput(tt.input, tt.format); got != tt.want {
			t.Errorf("defaultOutput(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}
