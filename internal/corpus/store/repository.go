package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/antoinebou12/horaire-search/internal/search"
)

// UpsertCourse inserts or updates a single course record.
func (db *DB) UpsertCourse(ctx context.Context, c search.Course) error {
	query := `
		INSERT INTO courses (code, title, description, credits, programme_prefix, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			credits = excluded.credits,
			programme_prefix = excluded.programme_prefix,
			updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(ctx, query, c.Code, c.Title, c.Description, c.Credits, c.ProgrammePrefix, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert course %s: %w", c.Code, err)
	}
	return nil
}

// UpsertCoursesBatch inserts or updates many course records in one transaction.
func (db *DB) UpsertCoursesBatch(ctx context.Context, courses []search.Course) error {
	if len(courses) == 0 {
		return nil
	}

	query := `
		INSERT INTO courses (code, title, description, credits, programme_prefix, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			credits = excluded.credits,
			programme_prefix = excluded.programme_prefix,
			updated_at = excluded.updated_at
	`

	now := time.Now().Unix()
	return db.ExecBatchContext(ctx, query, func(stmt *sql.Stmt) error {
		for _, c := range courses {
			if _, err := stmt.ExecContext(ctx, c.Code, c.Title, c.Description, c.Credits, c.ProgrammePrefix, now); err != nil {
				return fmt.Errorf("upsert course %s in batch: %w", c.Code, err)
			}
		}
		return nil
	})
}

// AllCourses loads every course row, ordered by code, for corpus snapshotting.
func (db *DB) AllCourses(ctx context.Context) ([]search.Course, error) {
	rows, err := db.Reader().QueryContext(ctx, `
		SELECT code, title, description, credits, programme_prefix
		FROM courses
		ORDER BY code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []search.Course
	for rows.Next() {
		var c search.Course
		var credits sql.NullInt64
		if err := rows.Scan(&c.Code, &c.Title, &c.Description, &credits, &c.ProgrammePrefix); err != nil {
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		if credits.Valid {
			v := int(credits.Int64)
			c.Credits = &v
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}

	return courses, nil
}

// CountCourses returns the number of course rows currently stored.
func (db *DB) CountCourses(ctx context.Context) (int, error) {
	var count int
	err := db.Reader().QueryRowContext(ctx, "SELECT COUNT(*) FROM courses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

// DeleteCourse removes a single course row by code.
func (db *DB) DeleteCourse(ctx context.Context, code string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM courses WHERE code = ?", code)
	if err != nil {
		return fmt.Errorf("delete course %s: %w", code, err)
	}
	return nil
}

// Snapshot implements search.CorpusProvider by loading the full course
// table. Errors are logged and an empty snapshot is returned rather than
// propagated, since CorpusProvider.Snapshot has no error return.
func (db *DB) Snapshot() []search.Course {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	courses, err := db.AllCourses(ctx)
	if err != nil {
		slog.Error("failed to load course snapshot from sqlite", "error", err)
		return nil
	}
	return courses
}
