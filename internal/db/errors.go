package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy surfaced by every store method. Callers match with
// errors.Is; nothing is retried internally.
var (
	// ErrValidation marks malformed input, such as an empty intention or a
	// non-positive intended duration.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to an unknown or soft-deleted record.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an operation that contradicts the current state.
	ErrConflict = errors.New("conflict")

	// ErrStorage marks an underlying persistence failure. Always fatal to
	// the current command, never swallowed.
	ErrStorage = errors.New("storage failure")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// wrapLookup translates a gorm lookup failure into the store taxonomy.
func wrapLookup(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr("%s #%d", what, id)
	}
	return storageErr(err)
}
