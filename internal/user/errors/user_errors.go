package usererrors

import (
	"net/http"

	"hubb-assist/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"email already registered for this clinic",
		http.StatusConflict,
	)

	ErrQuotaExceeded = apperror.New(
		apperror.CodeQuotaExceeded,
		"user limit reached for the current plan",
		http.StatusBadRequest,
	)

	ErrSelfDeactivation = apperror.New(
		apperror.CodeInvalidInput,
		"you cannot deactivate your own account",
		http.StatusBadRequest,
	)

	ErrUserInactive = apperror.New(
		apperror.CodeForbidden,
		"user account is deactivated",
		http.StatusForbidden,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role",
		http.StatusBadRequest,
	)
)
