package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// lockNotAvailableSQLState is PostgreSQL's SQLSTATE for a NOWAIT lock
// request that could not be granted immediately.
const lockNotAvailableSQLState = "55P03"

// uniqueViolationSQLState is PostgreSQL's SQLSTATE for a unique-index
// breach, used to detect the payment_sessions.request_id collision
// that marks a double-spend attempt.
const uniqueViolationSQLState = "23505"

func isLockNotAvailable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == lockNotAvailableSQLState
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationSQLState
}
