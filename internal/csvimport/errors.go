package csvimport

import (
	"errors"
	"fmt"
)

// ValidationError reports problems with the uploaded file itself: a missing
// or malformed header, or the joined per-row diagnostics of a rejected batch.
// Persistence failures are returned as plain errors, so callers can tell a
// bad file from a failed commit.
type ValidationError struct {
	msg string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.msg
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrInvalidRole is returned when a row reaches the transformer with a
	// role name that does not map to an importable role. Validation rejects
	// such rows first, so hitting this is an invariant violation.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUserGroupUndefined is returned when a student row reaches the
	// materializer without a team assignment. Validation rejects teamless
	// student rows first, so hitting this is an invariant violation.
	ErrUserGroupUndefined = errors.New("user group undefined")
)
