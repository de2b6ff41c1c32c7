package services

import (
	"errors"
	"math"
	"testing"

	"business-heatmap/models"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func record(lat, lon, rating *float64) models.BusinessRecord {
	return models.BusinessRecord{
		ID:        "b1",
		Name:      "  Bubble   Tea\tHouse ",
		Latitude:  lat,
		Longitude: lon,
		Rating:    rating,
		Address:   str("123 Main St"),
		City:      str("Vancouver"),
	}
}

func TestSanitizeRejectsMissingLocation(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon *float64
	}{
		{"no latitude", nil, f64(-123.1)},
		{"no longitude", f64(49.2), nil},
		{"neither", nil, nil},
		{"NaN latitude", f64(math.NaN()), f64(-123.1)},
		{"infinite longitude", f64(49.2), f64(math.Inf(1))},
		{"latitude out of range", f64(91), f64(-123.1)},
		{"longitude out of range", f64(49.2), f64(-181)},
	}

	for _, tt := range tests {
		for _, mode := range []models.WeightMode{models.WeightEqual, models.WeightRating} {
			_, err := Sanitize(record(tt.lat, tt.lon, f64(4)), mode)
			if !errors.Is(err, ErrMissingLocation) {
				t.Errorf("%s (%s): got %v, want ErrMissingLocation", tt.name, mode, err)
			}
		}
	}
}

func TestSanitizeRatingMode(t *testing.T) {
	rec := record(f64(49.28), f64(-123.12), nil)

	if _, err := Sanitize(rec, models.WeightRating); !errors.Is(err, ErrMissingWeight) {
		t.Errorf("rating mode without rating: got %v, want ErrMissingWeight", err)
	}

	row, err := Sanitize(rec, models.WeightEqual)
	if err != nil {
		t.Fatalf("equal mode without rating: unexpected error %v", err)
	}
	if row.Weight != 1.0 {
		t.Errorf("equal weight: got %v, want 1.0", row.Weight)
	}
}

func TestSanitizeWeights(t *testing.T) {
	rec := record(f64(49.28), f64(-123.12), f64(3.5))

	equal, err := Sanitize(rec, models.WeightEqual)
	if err != nil {
		t.Fatal(err)
	}
	weighted, err := Sanitize(rec, models.WeightRating)
	if err != nil {
		t.Fatal(err)
	}
	if equal.Weight != 1.0 {
		t.Errorf("equal weight ignores rating: got %v", equal.Weight)
	}
	if weighted.Weight != 3.5 {
		t.Errorf("weighted: got %v, want 3.5", weighted.Weight)
	}
	if equal.Name != "Bubble Tea House" {
		t.Errorf("name not normalised: %q", equal.Name)
	}
}

func TestSanitizeDefaultsAddress(t *testing.T) {
	rec := record(f64(49.28), f64(-123.12), f64(4))
	rec.Address = nil
	rec.City = nil

	row, err := Sanitize(rec, models.WeightRating)
	if err != nil {
		t.Fatalf("missing address must not reject: %v", err)
	}
	if row.Address != "" || row.City != "" {
		t.Errorf("address/city: got %q/%q, want empty", row.Address, row.City)
	}
}

func TestSanitizePairAligned(t *testing.T) {
	equal, weighted, err := SanitizePair(record(f64(49.28), f64(-123.12), f64(4.5)))
	if err != nil {
		t.Fatal(err)
	}
	weighted.Weight = equal.Weight
	if equal != weighted {
		t.Errorf("pair differs beyond weight: %+v vs %+v", equal, weighted)
	}

	if _, _, err := SanitizePair(record(f64(49.28), f64(-123.12), nil)); !errors.Is(err, ErrMissingWeight) {
		t.Errorf("pair without rating: got %v, want ErrMissingWeight", err)
	}
}
