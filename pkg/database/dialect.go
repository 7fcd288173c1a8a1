package database

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// IsPostgres reports whether the handle talks to PostgreSQL.
func IsPostgres(db sqlx.ExtContext) bool {
	switch db.DriverName() {
	case "pgx", "pgx/v5", "postgres":
		return true
	}
	return false
}

// ForUpdate returns the row lock clause supported by the driver.
// SQLite serializes writers, so it gets none.
func ForUpdate(db sqlx.ExtContext) string {
	if IsPostgres(db) {
		return " FOR UPDATE"
	}
	return ""
}

// LikeEscape pairs with ContainsPattern: "col LIKE ?" + LikeEscape.
const LikeEscape = ` ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching term anywhere, with its wildcards taken literally.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// InsertReturningID runs a named INSERT ... RETURNING id and scans the id.
func InsertReturningID(ctx context.Context, db sqlx.ExtContext, query string, arg interface{}) (int64, error) {
	q, args, err := db.BindNamed(query, arg)
	if err != nil {
		return 0, errors.Wrap(err, "bind insert")
	}
	var id int64
	if err := db.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// RowsAffected runs a positional statement and returns the affected row count.
func RowsAffected(ctx context.Context, db sqlx.ExtContext, query string, args ...interface{}) (int64, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
