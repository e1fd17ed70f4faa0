package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
)

const (
	pgUniqueViolation = "23505"
	sqliteUniqueMsg   = "UNIQUE constraint failed: "
)

// PgUniqueConstraint reports whether err is a PostgreSQL unique_violation
// and, if so, the name of the violated constraint.
func PgUniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// SQLiteUniqueColumn reports whether err is an SQLite UNIQUE failure and, if
// so, the first offending column as "table.column".
func SQLiteUniqueColumn(err error) (string, bool) {
	var sqErr *sqlite.Error
	if !errors.As(err, &sqErr) {
		return "", false
	}
	msg := sqErr.Error()
	i := strings.Index(msg, sqliteUniqueMsg)
	if i < 0 {
		return "", false
	}
	rest := msg[i+len(sqliteUniqueMsg):]
	if j := strings.IndexAny(rest, " ,("); j >= 0 {
		rest = rest[:j]
	}
	return rest, true
}
