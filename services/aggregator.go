package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"business-heatmap/mapping"
	"business-heatmap/models"
	"business-heatmap/utils"
)

const (
	// DefaultPageSize is the largest page the search API serves.
	DefaultPageSize = 50
	// DefaultHardCap is the highest offset the search API allows. Results
	// past it are truncated rather than treated as an error.
	DefaultHardCap = 950
)

// Aggregator walks every page of a search and builds the two row-aligned
// datasets of a SearchSession.
type Aggregator struct {
	searcher BusinessSearcher
	logger   *utils.Logger
	pageSize int
	hardCap  int
}

// NewAggregator creates an Aggregator with the default page size and cap.
func NewAggregator(searcher BusinessSearcher, logger *utils.Logger) *Aggregator {
	return &Aggregator{
		searcher: searcher,
		logger:   logger,
		pageSize: DefaultPageSize,
		hardCap:  DefaultHardCap,
	}
}

// WithLimits overrides page size and hard cap. Non-positive values keep the
// current setting.
func (a *Aggregator) WithLimits(pageSize, hardCap int) *Aggregator {
	if pageSize > 0 {
		a.pageSize = pageSize
	}
	if hardCap > 0 {
		a.hardCap = hardCap
	}
	return a
}

// Aggregate fetches pages sequentially until the declared total or the hard
// cap is passed, or a later page comes back empty. It returns either a
// complete session or a *SearchError; never a partial session.
func (a *Aggregator) Aggregate(ctx context.Context, q models.SearchQuery) (*models.SearchSession, error) {
	session := &models.SearchSession{
		ID:           uuid.NewString(),
		Query:        q,
		EqualRows:    make([]models.CanonicalRow, 0, a.pageSize),
		WeightedRows: make([]models.CanonicalRow, 0, a.pageSize),
		StartedAt:    time.Now(),
	}
	log := a.logger.With("session", session.ID)
	log.Info("[aggregator] Searching %q in %q (page size %d, cap %d)",
		q.Category, q.Location, a.pageSize, a.hardCap)

	offset := 0
	total := a.pageSize + 1
	haveCenter := false

	for offset <= total && offset <= a.hardCap {
		page, err := a.searcher.Search(ctx, q, offset, a.pageSize)
		if err != nil {
			return nil, a.fail(q, offset, err)
		}
		if page == nil || page.Businesses == nil {
			return nil, a.fail(q, offset, ErrUnresolvedQuery)
		}
		if len(page.Businesses) == 0 {
			if session.PagesFetched == 0 {
				return nil, a.fail(q, offset, ErrNoResults)
			}
			log.Debug("[aggregator] Empty page at offset %d, stopping", offset)
			break
		}

		session.PagesFetched++
		if session.PagesFetched == 1 && page.Center != nil {
			session.Center = *page.Center
			haveCenter = true
		}

		for _, rec := range page.Businesses {
			session.RecordsSeen++
			equal, weighted, err := SanitizePair(rec)
			if err != nil {
				session.Dropped++
				log.Debug("[aggregator] Skipping %q: %v", rec.Name, err)
				continue
			}
			session.EqualRows = append(session.EqualRows, equal)
			session.WeightedRows = append(session.WeightedRows, weighted)
		}

		log.Info("[aggregator] Page %d (offset %d): %d businesses, declared total %d, %d rows so far",
			session.PagesFetched, offset, len(page.Businesses), page.Total, len(session.EqualRows))

		offset += a.pageSize
		total = page.Total
	}

	session.DeclaredTotal = total
	session.Truncated = offset > a.hardCap && offset <= total
	if session.Truncated {
		log.Warn("[aggregator] Stopped at offset cap %d; %d declared results not fetched",
			a.hardCap, total-offset)
	}
	if !haveCenter && len(session.EqualRows) > 0 {
		session.Center = mapping.Centroid(session.EqualRows)
	}
	session.FinishedAt = time.Now()

	log.Info("[aggregator] Done in %v: %d pages, %d records, %d rows, %d dropped",
		session.FinishedAt.Sub(session.StartedAt).Round(time.Millisecond),
		session.PagesFetched, session.RecordsSeen, len(session.EqualRows), session.Dropped)
	return session, nil
}

func (a *Aggregator) fail(q models.SearchQuery, offset int, err error) error {
	a.logger.Error("[aggregator] %q in %q failed at offset %d: %v", q.Category, q.Location, offset, err)
	return &SearchError{Location: q.Location, Category: q.Category, Offset: offset, Err: err}
}
