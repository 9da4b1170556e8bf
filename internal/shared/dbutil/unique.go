package dbutil

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const pgUniqueViolation = "23505"

// UniqueViolation reports whether err is a unique constraint failure and
// returns what the driver names as the target: the index name on
// postgres, the "table.column, ..." list on sqlite.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
			return "", false
		}
		_, target, _ := strings.Cut(liteErr.Error(), "failed: ")
		return target, true
	}

	return "", false
}

// IsUniqueViolation matches a unique failure on the postgres index name or
// on a sqlite "table.column" entry.
func IsUniqueViolation(err error, index, column string) bool {
	target, ok := UniqueViolation(err)
	if !ok {
		return false
	}
	if index != "" && target == index {
		return true
	}
	return column != "" && strings.Contains(target, column)
}
