package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-heatmap/models"
)

func sampleSession(n int) *models.SearchSession {
	rows := make([]models.CanonicalRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.CanonicalRow{
			Name:      "Business",
			Latitude:  49 + float64(i)/1000,
			Longitude: -123,
			Weight:    float64(i%5) + 0.5,
			City:      "Vancouver",
		})
	}
	now := time.Now()
	return &models.SearchSession{
		ID:            uuid.NewString(),
		Query:         models.SearchQuery{Location: "Vancouver", Category: "bubbletea"},
		Center:        models.Coordinates{Latitude: 49.25, Longitude: -123.1},
		DeclaredTotal: n,
		PagesFetched:  (n + 49) / 50,
		RecordsSeen:   n,
		WeightedRows:  rows,
		StartedAt:     now.Add(-time.Second),
		FinishedAt:    now,
	}
}

func TestSQLiteWriterRoundTrip(t *testing.T) {
	ctx := context.Background()
	w, err := NewSQLiteWriter(ctx, filepath.Join(t.TempDir(), "db", "businesses.db"))
	require.NoError(t, err)
	defer w.Close()

	session := sampleSession(123)
	require.NoError(t, w.WriteSession(ctx, session))

	got, err := w.FetchRows(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, got, 123)
	assert.Equal(t, session.WeightedRows[0], got[0])
	assert.Equal(t, session.WeightedRows[122], got[122])
}

func TestSQLiteWriterKeepsSessionsApart(t *testing.T) {
	ctx := context.Background()
	w, err := NewSQLiteWriter(ctx, filepath.Join(t.TempDir(), "businesses.db"))
	require.NoError(t, err)
	defer w.Close()

	a, b := sampleSession(3), sampleSession(5)
	require.NoError(t, w.WriteSession(ctx, a))
	require.NoError(t, w.WriteSession(ctx, b))

	got, err := w.FetchRows(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	assert.Error(t, w.WriteSession(ctx, a), "duplicate session id must be rejected")
}

func TestSQLiteWriterEmptySession(t *testing.T) {
	ctx := context.Background()
	w, err := NewSQLiteWriter(ctx, filepath.Join(t.TempDir(), "businesses.db"))
	require.NoError(t, err)
	defer w.Close()

	s := sampleSession(0)
	require.NoError(t, w.WriteSession(ctx, s))
	got, err := w.FetchRows(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPostgresPlaceholders(t *testing.T) {
	assert.Equal(t, "$1", postgresDialect.placeholder(1))
	assert.Equal(t, "$12", postgresDialect.placeholder(12))
	assert.Equal(t, "?", sqliteDialect.placeholder(7))
}
