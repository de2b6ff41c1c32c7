package storage

import (
	"context"

	"business-heatmap/models"
)

// SessionWriter is the interface any database backend must satisfy.
type SessionWriter interface {
	WriteSession(ctx context.Context, s *models.SearchSession) error
	FetchRows(ctx context.Context, sessionID string) ([]models.CanonicalRow, error)
	Close() error
}

// RowWriter is the interface for flat table exports of canonical rows.
type RowWriter interface {
	WriteRows(rows []models.CanonicalRow) error
	Close() error
}

// DocumentPublisher uploads a rendered map document and returns where it
// can be reached.
type DocumentPublisher interface {
	Publish(ctx context.Context, name string, body []byte, contentType string) (string, error)
}
