package employee

import (
	"errors"
	"strings"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_user_employee_code" {
			return employeeerrors.ErrEmployeeCodeConflict
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_user_employee_code") {
		return employeeerrors.ErrEmployeeCodeConflict
	}

	return err
}

// IsCodeConflict reports whether err is the scoped uniqueness violation a
// losing concurrent writer sees; the caller retries its upsert as an update.
func IsCodeConflict(err error) bool {
	return errors.Is(mapRepositoryError(err), employeeerrors.ErrEmployeeCodeConflict)
}
