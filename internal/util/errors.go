// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrPackageNotFound      = errors.New("package not found")
	ErrInvalidInput         = errors.New("invalid input provided")
	ErrInvalidMethodKeyword = errors.New("invalid subscription method keyword")
	ErrInsufficientCredits  = errors.New("insufficient credits")
	ErrDuplicateEntry       = errors.New("duplicate entry")
	ErrStorage              = errors.New("storage error")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

// IsNotFound reports whether err is one of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPackageNotFound)
}

// StorageError tags a persistence failure with ErrStorage while keeping the
// underlying cause in the chain for logging.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
