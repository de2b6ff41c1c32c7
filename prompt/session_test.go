package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-heatmap/models"
	"business-heatmap/services"
	"business-heatmap/utils"
)

type queueSource struct {
	queries []models.SearchQuery
	asked   int
}

func (q *queueSource) NextQuery(context.Context) (models.SearchQuery, error) {
	if q.asked >= len(q.queries) {
		return models.SearchQuery{}, ErrAborted
	}
	q.asked++
	return q.queries[q.asked-1], nil
}

type fakeAggregator struct {
	results map[string]error
	seen    []models.SearchQuery
}

func (f *fakeAggregator) Aggregate(_ context.Context, q models.SearchQuery) (*models.SearchSession, error) {
	f.seen = append(f.seen, q)
	if err := f.results[q.Location]; err != nil {
		return nil, &services.SearchError{Location: q.Location, Category: q.Category, Err: err}
	}
	return &models.SearchSession{Query: q}, nil
}

func TestRunSessionRetriesResolvableFailures(t *testing.T) {
	src := &queueSource{queries: []models.SearchQuery{
		{Location: "Atlantis", Category: "bubbletea"},
		{Location: "Nowhere", Category: "bubbletea"},
		{Location: "Vancouver", Category: "bubbletea"},
	}}
	agg := &fakeAggregator{results: map[string]error{
		"Atlantis": services.ErrUnresolvedQuery,
		"Nowhere":  services.ErrNoResults,
	}}

	session, err := RunSession(context.Background(), src, agg, 3, utils.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "Vancouver", session.Query.Location)
	assert.Len(t, agg.seen, 3)
}

func TestRunSessionIsBounded(t *testing.T) {
	src := &queueSource{queries: []models.SearchQuery{
		{Location: "Atlantis"}, {Location: "Atlantis"}, {Location: "Atlantis"},
	}}
	agg := &fakeAggregator{results: map[string]error{"Atlantis": services.ErrUnresolvedQuery}}

	_, err := RunSession(context.Background(), src, agg, 2, utils.NewNopLogger())
	require.ErrorIs(t, err, services.ErrUnresolvedQuery)
	assert.Len(t, agg.seen, 2)
}

func TestRunSessionStopsOnTransportFailure(t *testing.T) {
	transport := errors.New("dial tcp: i/o timeout")
	src := &queueSource{queries: []models.SearchQuery{{Location: "Vancouver"}, {Location: "Vancouver"}}}
	agg := &fakeAggregator{results: map[string]error{"Vancouver": transport}}

	_, err := RunSession(context.Background(), src, agg, 3, utils.NewNopLogger())
	require.ErrorIs(t, err, transport)
	assert.Len(t, agg.seen, 1)
}

func TestRunSessionFixedQuery(t *testing.T) {
	agg := &fakeAggregator{}
	session, err := RunSession(context.Background(),
		FixedQuery{Location: "Burnaby", Category: "coffee"}, agg, 1, utils.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, models.SearchQuery{Location: "Burnaby", Category: "coffee"}, session.Query)
}

func TestRunSessionSourceAborts(t *testing.T) {
	_, err := RunSession(context.Background(), &queueSource{}, &fakeAggregator{}, 3, utils.NewNopLogger())
	assert.ErrorIs(t, err, ErrAborted)
}
