package apperror

import "fmt"

type AppError struct {
	Code       string // Error code (e.g., INVALID_INPUT)
	Message    string // User-friendly message
	HTTPStatus int    // HTTP status code
	Details    any    // Structured data for the client (optional)
	Err        error  // Wrapped original error (optional)

	origin *AppError
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Is reports whether e was derived from target via WithDetails/WithMessage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.origin != nil && e.origin == t
}

// WithDetails returns a copy carrying client-facing details.
// Sentinels stay untouched so errors.Is keeps matching the copy.
func (e *AppError) WithDetails(details any) *AppError {
	cp := e.derive()
	cp.Details = details
	return cp
}

// WithMessage returns a copy with a more specific message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := e.derive()
	cp.Message = message
	return cp
}

func (e *AppError) derive() *AppError {
	cp := *e
	cp.origin = e
	if e.origin != nil {
		cp.origin = e.origin
	}
	return &cp
}
