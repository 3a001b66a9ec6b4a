package tenanterrors

import (
	"net/http"

	"hubb-assist/internal/shared/apperror"
)

var (
	ErrTenantNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tenant not found",
		http.StatusNotFound,
	)

	ErrTenantInactive = apperror.New(
		apperror.CodeForbidden,
		"Tenant is inactive",
		http.StatusForbidden,
	)

	ErrSlugTaken = apperror.New(
		apperror.CodeConflict,
		"Tenant slug is already in use",
		http.StatusConflict,
	)

	ErrCNPJTaken = apperror.New(
		apperror.CodeConflict,
		"A tenant with this CNPJ already exists",
		http.StatusConflict,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"A tenant with this email already exists",
		http.StatusConflict,
	)

	ErrInvalidCNPJ = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid CNPJ",
		http.StatusBadRequest,
	)

	ErrInvalidCPF = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid CPF",
		http.StatusBadRequest,
	)

	ErrDocumentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Either CNPJ or CPF is required",
		http.StatusBadRequest,
	)

	ErrInvalidCEP = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or unknown CEP",
		http.StatusBadRequest,
	)

	ErrCEPLookupUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Address lookup is temporarily unavailable",
		http.StatusServiceUnavailable,
	)
)
