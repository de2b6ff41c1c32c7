package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-heatmap/mapping"
	"business-heatmap/models"
	"business-heatmap/services"
	"business-heatmap/utils"
)

type stubAggregator struct {
	err error
}

func (s *stubAggregator) Aggregate(_ context.Context, q models.SearchQuery) (*models.SearchSession, error) {
	if s.err != nil {
		return nil, &services.SearchError{Location: q.Location, Category: q.Category, Err: s.err}
	}
	rows := []models.CanonicalRow{{Name: "Chatime", Latitude: 49.28, Longitude: -123.12, Weight: 4.5}}
	equal := []models.CanonicalRow{{Name: "Chatime", Latitude: 49.28, Longitude: -123.12, Weight: 1}}
	return &models.SearchSession{
		Query:        q,
		Center:       models.Coordinates{Latitude: 49.25, Longitude: -123.1},
		EqualRows:    equal,
		WeightedRows: rows,
	}, nil
}

type stubCategories struct{}

func (stubCategories) Autocomplete(_ context.Context, text string) ([]models.Category, error) {
	if text == "fail" {
		return nil, errors.New("upstream down")
	}
	return []models.Category{{Alias: "bubbletea", Title: "Bubble Tea"}}, nil
}

func setupTestRouter(agg SessionAggregator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewHandler(agg, stubCategories{}, 11, utils.NewNopLogger()))
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestMapDocumentHandler(t *testing.T) {
	router := setupTestRouter(&stubAggregator{})

	w := get(router, "/api/v1/map?location=Vancouver&category=bubbletea")
	require.Equal(t, http.StatusOK, w.Code)

	var doc models.MapDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, 11, doc.Zoom)
	require.Len(t, doc.Control.Entries, 3)
	assert.Equal(t, models.LayerToggle{Name: mapping.EqualWeightLayerName, Visible: true}, doc.Control.Entries[0])
	assert.Equal(t, 4.5, doc.Layers[1].Density.Points[0].Weight)
}

func TestMapDocumentHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing category", "/api/v1/map?location=Vancouver", nil, http.StatusBadRequest, "MISSING_QUERY"},
		{"unresolved", "/api/v1/map?location=Atlantis&category=tea", services.ErrUnresolvedQuery, http.StatusUnprocessableEntity, "UNRESOLVED_QUERY"},
		{"no results", "/api/v1/map?location=Nowhere&category=tea", services.ErrNoResults, http.StatusUnprocessableEntity, "NO_RESULTS"},
		{"transport", "/api/v1/map?location=Vancouver&category=tea", errors.New("timeout"), http.StatusBadGateway, "UPSTREAM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(&stubAggregator{err: tt.err})
			w := get(router, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestMapPageHandler(t *testing.T) {
	router := setupTestRouter(&stubAggregator{})

	w := get(router, "/map?location=Vancouver&category=bubbletea")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "bubbletea in Vancouver")
}

func TestCategoriesHandler(t *testing.T) {
	router := setupTestRouter(&stubAggregator{})

	w := get(router, "/api/v1/categories?text=boba")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":[{"alias":"bubbletea","title":"Bubble Tea"}]}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, get(router, "/api/v1/categories").Code)
	assert.Equal(t, http.StatusBadGateway, get(router, "/api/v1/categories?text=fail").Code)
}

func TestHealth(t *testing.T) {
	w := get(setupTestRouter(&stubAggregator{}), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
