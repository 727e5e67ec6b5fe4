// Package pgerr classifies PostgreSQL errors returned by lib/pq.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeSerializationFail   = "40001"
)

func code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return code(err) == codeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return code(err) == codeForeignKeyViolation
}

// IsSerializationFailure reports a conflict under SERIALIZABLE isolation; the transaction may be retried.
func IsSerializationFailure(err error) bool {
	return code(err) == codeSerializationFail
}
