package qrcode

import (
	"net/http"
	"strings"

	"go-timeclock/internal/shared/apperror"

	"github.com/google/uuid"
)

const (
	payloadPrefix = "EMP"
	separator     = "_"
	suffixLength  = 8
)

var (
	ErrMalformedPayload = apperror.New(
		apperror.CodeMalformedPayload,
		"Invalid QR code",
		http.StatusBadRequest,
	)

	ErrInvalidIdentity = apperror.New(
		apperror.CodeInvalidInput,
		"Company id and employee number must be non-empty and must not contain '_'",
		http.StatusBadRequest,
	)
)

// Identity is what a QR payload asserts: an employee number inside a company.
type Identity struct {
	CompanyID      string
	EmployeeNumber string
}

// ValidComponent reports whether s can be embedded in a payload.
func ValidComponent(s string) bool {
	return s != "" && !strings.Contains(s, separator) && strings.TrimSpace(s) == s
}

// Encode returns EMP_<companyID>_<number>_<suffix>. The suffix only makes
// each issued code unique.
func Encode(companyID, employeeNumber string) (string, error) {
	if !ValidComponent(companyID) || !ValidComponent(employeeNumber) {
		return "", ErrInvalidIdentity
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
	return strings.Join([]string{payloadPrefix, companyID, employeeNumber, suffix}, separator), nil
}

func Decode(payload string) (Identity, error) {
	parts := strings.Split(payload, separator)
	if len(parts) != 4 || parts[0] != payloadPrefix {
		return Identity{}, ErrMalformedPayload
	}
	for _, p := range parts[1:] {
		if p == "" {
			return Identity{}, ErrMalformedPayload
		}
	}
	return Identity{CompanyID: parts[1], EmployeeNumber: parts[2]}, nil
}
