// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/mattn/go-sqlite3"

	"github.com/example/monitor/internal/ports/secondary"
)

// persistenceErr tags a driver failure with secondary.PersistenceFailure while
// keeping the driver error reachable through errors.As.
func persistenceErr(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, secondary.PersistenceFailure, err)
}

func isConstraint(err error, code sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == code
	}
	return false
}

func isUniqueViolation(err error) bool {
	return isConstraint(err, sqlite3.ErrConstraintUnique)
}

func isForeignKeyViolation(err error) bool {
	return isConstraint(err, sqlite3.ErrConstraintForeignKey)
}
