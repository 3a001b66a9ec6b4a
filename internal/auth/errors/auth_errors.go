package autherrors

import (
	"net/http"

	"hubb-assist/internal/shared/apperror"
)

// ErrInvalidCredentials deliberately covers both unknown email and wrong
// password so the response never reveals which one failed.
var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Incorrect email or password",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or expired refresh token",
		http.StatusUnauthorized,
	)

	ErrInvalidResetToken = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or expired password reset token",
		http.StatusBadRequest,
	)

	ErrBadIdentifier = apperror.New(
		apperror.CodeInvalidInput,
		"Login must be in the form email@clinic-slug",
		http.StatusBadRequest,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)
)
