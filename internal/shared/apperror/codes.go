package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUnknownPrincipal   = "UNKNOWN_PRINCIPAL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeDuplicateName      = "DUPLICATE_NAME"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeDuplicateNumber    = "DUPLICATE_EMPLOYEE_NUMBER"
	CodeMalformedPayload   = "MALFORMED_PAYLOAD"
	CodeCrossTenant        = "CROSS_TENANT"
	CodeUnknownEmployee    = "UNKNOWN_EMPLOYEE"
	CodeCooldown           = "COOLDOWN"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
