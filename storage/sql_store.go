package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"business-heatmap/models"
)

// dialect holds what differs between the SQL backends.
type dialect struct {
	name        string
	serial      string
	float       string
	placeholder func(n int) string
}

// sqlStore persists sessions and their rating-weighted rows.
type sqlStore struct {
	db *sql.DB
	d  dialect
}

func (s *sqlStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS search_sessions (
			id             TEXT PRIMARY KEY,
			location       TEXT NOT NULL,
			category       TEXT NOT NULL,
			center_lat     ` + s.d.float + ` NOT NULL,
			center_lon     ` + s.d.float + ` NOT NULL,
			declared_total INTEGER NOT NULL DEFAULT 0,
			pages_fetched  INTEGER NOT NULL DEFAULT 0,
			records_seen   INTEGER NOT NULL DEFAULT 0,
			dropped        INTEGER NOT NULL DEFAULT 0,
			truncated      BOOLEAN NOT NULL DEFAULT FALSE,
			started_at     TIMESTAMP NOT NULL,
			finished_at    TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS businesses (
			id         ` + s.d.serial + `,
			session_id TEXT NOT NULL REFERENCES search_sessions(id) ON DELETE CASCADE,
			position   INTEGER NOT NULL,
			name       TEXT NOT NULL,
			lat        ` + s.d.float + ` NOT NULL,
			lon        ` + s.d.float + ` NOT NULL,
			rating     ` + s.d.float + ` NOT NULL,
			address    TEXT NOT NULL DEFAULT '',
			city       TEXT NOT NULL DEFAULT '',
			UNIQUE (session_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_businesses_session ON businesses(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_businesses_city    ON businesses(city)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_query     ON search_sessions(location, category)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: migrate: %w", s.d.name, err)
		}
	}
	return nil
}

// WriteSession stores the session and its weighted rows in one transaction.
func (s *sqlStore) WriteSession(ctx context.Context, session *models.SearchSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", s.d.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	p := s.d.placeholder
	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO search_sessions
			(id, location, category, center_lat, center_lon, declared_total,
			 pages_fetched, records_seen, dropped, truncated, started_at, finished_at)
		VALUES (%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s)`,
		p(1), p(2), p(3), p(4), p(5), p(6), p(7), p(8), p(9), p(10), p(11), p(12)),
		session.ID, session.Query.Location, session.Query.Category,
		session.Center.Latitude, session.Center.Longitude, session.DeclaredTotal,
		session.PagesFetched, session.RecordsSeen, session.Dropped, session.Truncated,
		session.StartedAt.UTC(), session.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: insert session: %w", s.d.name, err)
	}

	const batchSize = 50
	rows := session.WeightedRows
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.insertBatch(ctx, tx, session.ID, i, rows[i:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", s.d.name, err)
	}
	return nil
}

func (s *sqlStore) insertBatch(ctx context.Context, tx *sql.Tx, sessionID string, start int, batch []models.CanonicalRow) error {
	const cols = 8
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		base := idx * cols
		ph := make([]string, cols)
		for c := range ph {
			ph[c] = s.d.placeholder(base + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			sessionID, start+idx, r.Name, r.Latitude, r.Longitude, r.Weight, r.Address, r.City)
	}

	query := fmt.Sprintf(`
		INSERT INTO businesses (session_id, position, name, lat, lon, rating, address, city)
		VALUES %s`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("%s: insert businesses: %w", s.d.name, err)
	}
	return nil
}

// FetchRows returns a session's stored rows in their original order.
func (s *sqlStore) FetchRows(ctx context.Context, sessionID string) ([]models.CanonicalRow, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT name, lat, lon, rating, address, city
		FROM businesses
		WHERE session_id = %s
		ORDER BY position`, s.d.placeholder(1)), sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch rows: %w", s.d.name, err)
	}
	defer rows.Close()

	var out []models.CanonicalRow
	for rows.Next() {
		var r models.CanonicalRow
		if err := rows.Scan(&r.Name, &r.Latitude, &r.Longitude, &r.Weight, &r.Address, &r.City); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", s.d.name, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database handle.
func (s *sqlStore) Close() error {
	return s.db.Close()
}
