package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"business-heatmap/utils"
)

var postgresDialect = dialect{
	name:        "postgres",
	serial:      "SERIAL PRIMARY KEY",
	float:       "DOUBLE PRECISION",
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
}

// PostgresWriter persists search sessions to PostgreSQL.
type PostgresWriter struct {
	*sqlStore
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for it to come
// up, runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second, MaxDelay: 2 * time.Second}
	}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{sqlStore: &sqlStore{db: db, d: postgresDialect}}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return pw, nil
}
