package dao

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPermissionDenied = errors.New("permission denied")

	ErrOperatorEmailExists = errors.New("operator already exists")
	ErrOperatorNotFound    = errors.New("operator not found")

	ErrStudentEmailExists = errors.New("student email already registered")
	ErrStudentNotFound    = errors.New("student not found")

	ErrCollegeNotFound = errors.New("college not found")

	ErrWorkshopNotFound   = errors.New("workshop not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSubmissionGraded   = errors.New("submission already graded")
)

// uniqueViolation reports whether err is a unique violation of the named constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}

// mapError turns privilege failures into ErrPermissionDenied and leaves everything else untouched.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InsufficientPrivilege {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, pgErr.Message)
	}

	return err
}
