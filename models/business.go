package models

import "time"

// SearchQuery is the validated location and category alias of one search.
type SearchQuery struct {
	Location string
	Category string
}

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// BusinessRecord is one raw business as returned by the search API.
// Pointer fields are nil when the API omitted them.
type BusinessRecord struct {
	ID        string
	Name      string
	Latitude  *float64
	Longitude *float64
	Rating    *float64
	Address   *string
	City      *string
}

// SearchPage is one limit/offset page of search results. Businesses is nil
// when the response had no businesses field at all, which the API does for
// locations or categories it cannot resolve; an empty non-nil slice is a
// resolved query with no results on this page.
type SearchPage struct {
	Businesses []BusinessRecord
	Total      int
	Center     *Coordinates
}

// Category is one autocomplete suggestion.
type Category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// WeightMode selects how a record's weight is derived.
type WeightMode int

const (
	// WeightEqual gives every row weight 1.0.
	WeightEqual WeightMode = iota
	// WeightRating uses the business rating as the weight.
	WeightRating
)

func (m WeightMode) String() string {
	switch m {
	case WeightEqual:
		return "equal"
	case WeightRating:
		return "rating"
	default:
		return "unknown"
	}
}

// CanonicalRow is a sanitized business ready for map rendering.
type CanonicalRow struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Weight    float64 `json:"weight"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
}

// SearchSession is the complete result of one paginated aggregation.
// EqualRows and WeightedRows are row-aligned: they differ only in Weight.
type SearchSession struct {
	ID            string
	Query         SearchQuery
	Center        Coordinates
	DeclaredTotal int
	PagesFetched  int
	RecordsSeen   int
	Dropped       int
	Truncated     bool
	EqualRows     []CanonicalRow
	WeightedRows  []CanonicalRow
	StartedAt     time.Time
	FinishedAt    time.Time
}

// InsightReport holds summary statistics over a session's rows.
type InsightReport struct {
	TotalBusinesses  int
	RatedBusinesses  int
	AverageRating    float64
	MinRating        float64
	MaxRating        float64
	TopRated         []CanonicalRow
	BusinessesByCity map[string]int
}
