package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nbekov/noted/internal/domain"
)

// Field length bounds, in characters.
const (
	usernameMinLen = 3
	usernameMaxLen = 32
	emailMinLen    = 5
	emailMaxLen    = 128
	passwordMinLen = 3
	passwordMaxLen = 2048
	nameMinLen     = 1
	nameMaxLen     = 32
	contentMaxLen  = 2048
)

// validateField enforces the length bounds for one field. A minimum of zero
// permits the empty string; otherwise blank values fail the "required" rule.
func validateField(field, value string, minLen, maxLen int) error {
	if minLen > 0 && strings.TrimSpace(value) == "" {
		return &domain.ValidationError{Field: field, Rule: "required"}
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return &domain.ValidationError{Field: field, Rule: fmt.Sprintf("min length %d", minLen)}
	}
	if length > maxLen {
		return &domain.ValidationError{Field: field, Rule: fmt.Sprintf("max length %d", maxLen)}
	}
	return nil
}
