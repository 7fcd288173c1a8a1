package store

import (
	"context"
	"embed"
	"strings"

	"github.com/fekuna/omnipos-warehouse-service/pkg/database"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the schema for the driver behind db. Statements are idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	file := "migrations/sqlite.sql"
	if database.IsPostgres(db) {
		file = "migrations/postgres.sql"
	}

	schema, err := migrations.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "read schema")
	}

	for _, stmt := range strings.Split(string(schema), ";") {
		if stmt = strings.TrimSpace(stmt); stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "apply schema statement %q", firstLine(stmt))
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
