package yelp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"business-heatmap/models"
	"business-heatmap/utils"
)

const (
	defaultBaseURL     = "https://api.yelp.com/v3"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 60 * 60
	maxErrorBody       = 2048
)

// CacheProvider stores raw API responses between runs.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
}

// APIError is a non-success HTTP response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("yelp: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("yelp: status %d: %s", e.StatusCode, e.Message)
}

// Options tune a Client. Zero values pick the defaults.
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Locale      string
	Cache       CacheProvider
	CacheTTL    int
	MinInterval time.Duration
	Logger      *utils.Logger
}

// Client talks to the Yelp Fusion business search and autocomplete
// endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	locale     string
	cache      CacheProvider
	cacheTTL   int
	throttle   *utils.Throttle
	logger     *utils.Logger
}

// NewClient creates a Client authenticating with apiKey.
func NewClient(apiKey string, opts Options) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		locale:     opts.Locale,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		throttle:   utils.NewThrottle(opts.MinInterval),
		logger:     opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if c.cacheTTL <= 0 {
		c.cacheTTL = defaultCacheTTL
	}
	if c.logger == nil {
		c.logger = utils.NewNopLogger()
	}
	return c
}

// Search fetches one page of businesses. A 400 response means the API could
// not resolve the location or category and is returned as a page with nil
// Businesses rather than as an error.
func (c *Client) Search(ctx context.Context, q models.SearchQuery, offset, limit int) (*models.SearchPage, error) {
	params := url.Values{}
	params.Set("location", q.Location)
	params.Set("categories", q.Category)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	if c.locale != "" {
		params.Set("locale", c.locale)
	}

	body, err := c.get(ctx, "/businesses/search", params)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			c.logger.Warn("[yelp] Query not resolvable (%s): %s", apiErr.Code, apiErr.Message)
			return &models.SearchPage{}, nil
		}
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("yelp: decode search response: %w", err)
	}
	return resp.toPage(), nil
}

// Autocomplete returns category suggestions for text.
func (c *Client) Autocomplete(ctx context.Context, text string) ([]models.Category, error) {
	params := url.Values{}
	params.Set("text", text)
	if c.locale != "" {
		params.Set("locale", c.locale)
	}

	body, err := c.get(ctx, "/autocomplete", params)
	if err != nil {
		return nil, err
	}

	var resp autocompleteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("yelp: decode autocomplete response: %w", err)
	}
	return resp.Categories, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("yelp: api key is required")
	}

	query := params.Encode()
	cacheKey := "yelp:v1:" + hashKey(path+"?"+query)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			c.logger.Debug("[yelp] Cache hit %s?%s", path, query)
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query, nil)
	if err != nil {
		return nil, fmt.Errorf("yelp: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.throttle.Wait()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yelp: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yelp: read %s response: %w", path, err)
	}
	c.logger.Debug("[yelp] GET %s?%s -> %d in %v", path, query, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL); err != nil {
			c.logger.Warn("[yelp] Cache write failed: %v", err)
		}
	}
	return body, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Code != "" {
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Description
		return apiErr
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
