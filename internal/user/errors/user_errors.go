package usererrors

import (
	"go-timeclock/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrDuplicateUsername = apperror.New(
		apperror.CodeDuplicateUsername,
		"Username already exists",
		http.StatusConflict,
	)

	ErrCannotDeleteSelf = apperror.New(
		apperror.CodeInvalidInput,
		"You cannot delete your own account",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be admin or user",
		http.StatusBadRequest,
	)
)
