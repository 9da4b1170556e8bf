package autherrors

import (
	"go-timeclock/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidToken = apperror.New(
		apperror.CodeInvalidToken,
		"Could not validate credentials",
		http.StatusUnauthorized,
	)

	ErrTokenMissing = apperror.New(
		apperror.CodeUnauthorized,
		"Not authenticated",
		http.StatusUnauthorized,
	)

	ErrUnknownPrincipal = apperror.New(
		apperror.CodeUnknownPrincipal,
		"Could not validate credentials",
		http.StatusUnauthorized,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Not enough permissions",
		http.StatusForbidden,
	)

	ErrOwnerRequired = apperror.New(
		apperror.CodeForbidden,
		"Owner access required",
		http.StatusForbidden,
	)

	ErrAdminRequired = apperror.New(
		apperror.CodeForbidden,
		"Admin access required",
		http.StatusForbidden,
	)

	ErrCompanyUserRequired = apperror.New(
		apperror.CodeForbidden,
		"Company user access required",
		http.StatusForbidden,
	)

	ErrInvalidCredentials = apperror.New(
		apperror.CodeInvalidCredentials,
		"Incorrect username or password",
		http.StatusUnauthorized,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to issue access token",
		http.StatusInternalServerError,
	)
)
