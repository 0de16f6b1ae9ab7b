package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// ErrTankerInUse blocks deleting a tanker that still has dependants.
var ErrTankerInUse = apperrors.New(apperrors.CodeTankerInUse, "Bowser has deployments or maintenance records; delete them first or pass cascade=true", http.StatusBadRequest)

// isUniqueConstraintError detects database uniqueness constraint violations across vendors.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "23505" {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil && myErr.Number == 1062 {
		return true
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "unique constraint") || strings.Contains(lower, "duplicate")
}

// isForeignKeyError detects referential integrity violations across vendors.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "23503" {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil && (myErr.Number == 1451 || myErr.Number == 1452) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

// writeError maps a failed write to the client facing taxonomy. Application
// errors pass through untouched.
func writeError(err error, duplicateMessage string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case isUniqueConstraintError(err):
		return apperrors.NewValidation(duplicateMessage)
	case isForeignKeyError(err):
		return apperrors.NewValidation("Referenced record does not exist or is still in use")
	default:
		return apperrors.NewStorage(err)
	}
}

// readError maps a failed lookup to NOT_FOUND or STORAGE_ERROR.
func readError(err error, resource string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NewNotFound(resource)
	default:
		return apperrors.NewStorage(err)
	}
}
