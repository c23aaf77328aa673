package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the reload protocol inspects.
const (
	pgFKViolation  = "23503"
	pgUndefinedTbl = "42P01"
	pgAuthFailed   = "28P01"
	pgInvalidAuthz = "28000"
)

// isFKViolation reports whether err is a foreign-key violation, the signal
// that dependent result rows still reference the lookup table.
func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgFKViolation
}

// isUndefinedTable reports whether err means the target table does not exist.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTbl
}

// describeConnFailure classifies a connection error into a human-readable
// cause. The run is fatal either way; this only sharpens the diagnosis.
func describeConnFailure(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgAuthFailed || pgErr.Code == pgInvalidAuthz) {
		return "authentication failed, check database credentials"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection refused, is PostgreSQL running?"
	case strings.Contains(msg, "password authentication failed"):
		return "authentication failed, check database credentials"
	case strings.Contains(msg, "no such host"), strings.Contains(msg, "could not translate host name"):
		return "cannot resolve database host"
	default:
		return "database unavailable"
	}
}
