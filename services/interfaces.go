package services

import (
	"context"

	"business-heatmap/models"
)

// BusinessSearcher fetches one limit/offset page of businesses.
type BusinessSearcher interface {
	Search(ctx context.Context, q models.SearchQuery, offset, limit int) (*models.SearchPage, error)
}

// CategoryAutocompleter suggests category aliases for free text.
type CategoryAutocompleter interface {
	Autocomplete(ctx context.Context, text string) ([]models.Category, error)
}
