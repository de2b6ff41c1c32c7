package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var sqliteDialect = dialect{
	name:        "sqlite",
	serial:      "INTEGER PRIMARY KEY AUTOINCREMENT",
	float:       "REAL",
	placeholder: func(int) string { return "?" },
}

// SQLiteWriter persists search sessions to a local SQLite file.
type SQLiteWriter struct {
	*sqlStore
}

// NewSQLiteWriter opens (or creates) the database at path and runs schema
// migrations.
func NewSQLiteWriter(ctx context.Context, path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	sw := &SQLiteWriter{sqlStore: &sqlStore{db: db, d: sqliteDialect}}
	if err := sw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sw, nil
}
