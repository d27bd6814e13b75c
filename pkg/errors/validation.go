package errors

import "unicode"

// maxNameLength bounds operator-supplied entry names. The longest names in
// the game catalog are well under 100 characters.
const maxNameLength = 128

// ValidateEntryName validates an operator-supplied name or category for a
// configuration entry.
//
// The validation rules are intentionally conservative:
//   - No empty names (callers trim before validating)
//   - No control characters
//   - Maximum length of 128 characters
//
// Whether an empty answer means "skip" is the resolver's decision; this
// function only distinguishes storable strings from garbage.
func ValidateEntryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "entry name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "entry name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "entry name contains control characters")
		}
	}

	return nil
}
