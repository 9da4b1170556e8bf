package employee

import (
	"errors"

	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if dbutil.IsUniqueViolation(err, "uq_employee_number", "employees.number") {
		return employeeerrors.ErrDuplicateNumber
	}

	return err
}
