package prompt

import (
	"context"
	"errors"
	"fmt"

	"business-heatmap/models"
	"business-heatmap/services"
	"business-heatmap/utils"
)

// QuerySource yields the next query to try.
type QuerySource interface {
	NextQuery(ctx context.Context) (models.SearchQuery, error)
}

// Aggregator runs one complete search.
type Aggregator interface {
	Aggregate(ctx context.Context, q models.SearchQuery) (*models.SearchSession, error)
}

// FixedQuery is a QuerySource that always returns the same query.
type FixedQuery models.SearchQuery

func (f FixedQuery) NextQuery(context.Context) (models.SearchQuery, error) {
	return models.SearchQuery(f), nil
}

// RunSession asks src for a query and aggregates it. When the search fails
// with an unresolved query or no results, it asks again, up to maxAttempts
// queries in total. Any other failure is returned immediately.
func RunSession(ctx context.Context, src QuerySource, agg Aggregator, maxAttempts int, logger *utils.Logger) (*models.SearchSession, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		q, err := src.NextQuery(ctx)
		if err != nil {
			return nil, err
		}

		session, err := agg.Aggregate(ctx, q)
		if err == nil {
			return session, nil
		}
		if !services.Retryable(err) {
			return nil, err
		}

		lastErr = err
		switch {
		case errors.Is(err, services.ErrUnresolvedQuery):
			logger.Warn("[prompt] Location not found. Try again (%d/%d).", attempt, maxAttempts)
		default:
			logger.Warn("[prompt] No results for that category here, or the category is not available in this country. Try again (%d/%d).",
				attempt, maxAttempts)
		}
	}
	return nil, fmt.Errorf("giving up after %d queries: %w", maxAttempts, lastErr)
}
