package services

import (
	"math"
	"strings"
	"unicode"

	"github.com/golang/geo/s2"

	"business-heatmap/models"
)

// Sanitize turns one raw record into a canonical row for the given weight
// mode, or returns ErrMissingLocation / ErrMissingWeight.
func Sanitize(rec models.BusinessRecord, mode models.WeightMode) (models.CanonicalRow, error) {
	if rec.Latitude == nil || rec.Longitude == nil {
		return models.CanonicalRow{}, ErrMissingLocation
	}
	lat, lon := *rec.Latitude, *rec.Longitude
	if !finite(lat) || !finite(lon) || !s2.LatLngFromDegrees(lat, lon).IsValid() {
		return models.CanonicalRow{}, ErrMissingLocation
	}

	weight := 1.0
	if mode == models.WeightRating {
		if rec.Rating == nil || !finite(*rec.Rating) {
			return models.CanonicalRow{}, ErrMissingWeight
		}
		weight = *rec.Rating
	}

	return models.CanonicalRow{
		Name:      normaliseText(rec.Name),
		Latitude:  lat,
		Longitude: lon,
		Weight:    weight,
		Address:   normaliseText(deref(rec.Address)),
		City:      normaliseText(deref(rec.City)),
	}, nil
}

// SanitizePair sanitizes rec in both weight modes. It only succeeds when
// both modes accept the record, so the two rows always describe the same
// point.
func SanitizePair(rec models.BusinessRecord) (equal, weighted models.CanonicalRow, err error) {
	if equal, err = Sanitize(rec, models.WeightEqual); err != nil {
		return models.CanonicalRow{}, models.CanonicalRow{}, err
	}
	if weighted, err = Sanitize(rec, models.WeightRating); err != nil {
		return models.CanonicalRow{}, models.CanonicalRow{}, err
	}
	return equal, weighted, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
