package companyerrors

import (
	"go-timeclock/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrDuplicateName = apperror.New(
		apperror.CodeDuplicateName,
		"A company with this name already exists",
		http.StatusConflict,
	)

	ErrInvalidTimezone = apperror.New(
		apperror.CodeInvalidInput,
		"Timezone must be an IANA zone name",
		http.StatusBadRequest,
	)
)
