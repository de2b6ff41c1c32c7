package services

import (
	"errors"
	"fmt"
)

// Row-level rejections. These are absorbed by the aggregator and never
// surfaced to callers on their own.
var (
	ErrMissingLocation = errors.New("record has no usable latitude/longitude")
	ErrMissingWeight   = errors.New("record has no rating to weight by")
)

// Session-level failures. Each ends the aggregation; the caller decides
// whether to try again with a different query.
var (
	ErrUnresolvedQuery = errors.New("location or category could not be resolved")
	ErrNoResults       = errors.New("no businesses found for this location and category")
)

// SearchError reports a failed aggregation together with the query and
// offset it failed at. It unwraps to one of the session sentinels or to the
// transport error returned by the searcher.
type SearchError struct {
	Location string
	Category string
	Offset   int
	Err      error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %q in %q failed at offset %d: %v", e.Category, e.Location, e.Offset, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether err is a terminal query failure that a caller
// can reasonably retry with corrected input.
func Retryable(err error) bool {
	return errors.Is(err, ErrUnresolvedQuery) || errors.Is(err, ErrNoResults)
}
