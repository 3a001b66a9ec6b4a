package policy

import (
	"net/http"
	"unicode"

	"hubb-assist/internal/shared/apperror"
)

// ErrWeakPassword is returned for any password failing the composition rule.
var ErrWeakPassword = apperror.New(
	apperror.CodeInvalidInput,
	"Password must be at least 6 characters and contain a letter and a number",
	http.StatusBadRequest,
)

// ValidatePassword enforces the account password rule: minimum length 6,
// at least one letter and at least one digit.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
