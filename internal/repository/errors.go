package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// expectAffected turns a zero-row write into a NotFound error.
func expectAffected(result sql.Result, format string, args ...interface{}) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Annotate(err, "checking affected rows")
	}
	if rowsAffected == 0 {
		return errors.NotFoundf(format, args...)
	}
	return nil
}

// rollback is deferred by transactional methods; it is a no-op after commit.
func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Warningf("rolling back transaction: %v", err)
	}
}

// offset converts a 1-based page into a row offset.
func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
