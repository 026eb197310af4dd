package store

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS courses (
	code             TEXT PRIMARY KEY,
	title            TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	credits          INTEGER,
	programme_prefix TEXT NOT NULL DEFAULT '',
	updated_at       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_courses_programme_prefix ON courses(programme_prefix);
`

// InitSchema creates the courses table and its supporting indexes if absent.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("initialize course schema: %w", err)
	}
	return nil
}
