package employeeerrors

import (
	"go-timeclock/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateNumber = apperror.New(
		apperror.CodeDuplicateNumber,
		"Employee number already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidNumber = apperror.New(
		apperror.CodeInvalidInput,
		"Employee number must not be blank or contain '_'",
		http.StatusBadRequest,
	)
	ErrNumberChanged = apperror.New(
		apperror.CodeConflict,
		"Employee number was changed by another request",
		http.StatusConflict,
	)
)
