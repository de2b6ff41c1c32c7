package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"business-heatmap/mapping"
	"business-heatmap/models"
	"business-heatmap/services"
	"business-heatmap/utils"
)

// SessionAggregator runs one complete search.
type SessionAggregator interface {
	Aggregate(ctx context.Context, q models.SearchQuery) (*models.SearchSession, error)
}

// Handler serves maps and category suggestions over HTTP.
type Handler struct {
	aggregator SessionAggregator
	categories services.CategoryAutocompleter
	zoom       int
	logger     *utils.Logger
}

// NewHandler creates a Handler.
func NewHandler(agg SessionAggregator, categories services.CategoryAutocompleter, zoom int, logger *utils.Logger) *Handler {
	return &Handler{aggregator: agg, categories: categories, zoom: zoom, logger: logger}
}

// SetupRoutes registers all routes on router.
func SetupRoutes(router *gin.Engine, h *Handler) {
	router.GET("/health", h.Health)
	router.GET("/map", h.MapPage)

	v1 := router.Group("/api/v1")
	v1.GET("/categories", h.Categories)
	v1.GET("/map", h.MapDocument)
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Categories handles GET /api/v1/categories?text=
func (h *Handler) Categories(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		errorResponse(c, http.StatusBadRequest, "MISSING_TEXT", "text query parameter is required")
		return
	}

	cats, err := h.categories.Autocomplete(c.Request.Context(), text)
	if err != nil {
		h.logger.Error("[api] autocomplete %q failed: %v", text, err)
		errorResponse(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// MapDocument handles GET /api/v1/map?location=&category=
func (h *Handler) MapDocument(c *gin.Context) {
	doc, ok := h.buildMap(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doc)
}

// MapPage handles GET /map?location=&category= and returns the rendered page.
func (h *Handler) MapPage(c *gin.Context) {
	doc, ok := h.buildMap(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := mapping.RenderHTML(&buf, doc); err != nil {
		errorResponse(c, http.StatusInternalServerError, "RENDER_ERROR", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) buildMap(c *gin.Context) (*models.MapDocument, bool) {
	q := models.SearchQuery{
		Location: strings.TrimSpace(c.Query("location")),
		Category: strings.TrimSpace(c.Query("category")),
	}
	if q.Location == "" || q.Category == "" {
		errorResponse(c, http.StatusBadRequest, "MISSING_QUERY", "location and category query parameters are required")
		return nil, false
	}

	session, err := h.aggregator.Aggregate(c.Request.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnresolvedQuery):
			errorResponse(c, http.StatusUnprocessableEntity, "UNRESOLVED_QUERY", err.Error())
		case errors.Is(err, services.ErrNoResults):
			errorResponse(c, http.StatusUnprocessableEntity, "NO_RESULTS", err.Error())
		default:
			errorResponse(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		}
		return nil, false
	}

	return mapping.BuildSessionMap(session, h.zoom), true
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}
