package attendanceerrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrCrossTenant = apperror.New(
		apperror.CodeCrossTenant,
		"QR code does not belong to your company",
		http.StatusForbidden,
	)
	ErrUnknownEmployee = apperror.New(
		apperror.CodeUnknownEmployee,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrCooldown = apperror.New(
		apperror.CodeCooldown,
		"Wait before scanning again",
		http.StatusTooManyRequests,
	)
	ErrOpenSession = apperror.New(
		apperror.CodeConflict,
		"Employee already has an open session for this day",
		http.StatusConflict,
	)
	ErrTimeEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Time entry not found",
		http.StatusNotFound,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"check_out must be after check_in",
		http.StatusBadRequest,
	)
	ErrFutureTime = apperror.New(
		apperror.CodeInvalidInput,
		"check_in and check_out cannot be in the future",
		http.StatusBadRequest,
	)
)
