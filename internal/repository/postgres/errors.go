// internal/repository/postgres/errors.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"agent-ledger/internal/util"
)

// SQLSTATE codes this package translates.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// wrapError turns a driver error into the application taxonomy. Constraint
// violations become client errors; everything else is a storage error.
func wrapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, util.ErrDuplicateEntry, pqErr.Constraint)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w (%s)", op, util.ErrNotFound, pqErr.Constraint)
		}
	}
	return util.StorageError(op, err)
}
