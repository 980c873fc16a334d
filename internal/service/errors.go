package service

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

// Postgres error codes mapped to client errors.
const (
	pqForeignKeyViolation       = "23503"
	pqUniqueViolation           = "23505"
	pqInvalidTextRepresentation = "22P02"
	pqInvalidDatetimeFormat     = "22007"
)

// internalError keeps typed errors raised below the service (unknown filter
// fields, unsupported operators), reports values postgres could not cast as
// a 400 and wraps everything else as a 500.
func internalError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch pqCode(err) {
	case pqInvalidTextRepresentation, pqInvalidDatetimeFormat:
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter value")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isForeignKeyViolation(err error) bool {
	return pqCode(err) == pqForeignKeyViolation
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == pqUniqueViolation
}
