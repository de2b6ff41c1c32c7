package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-heatmap/models"
)

func TestCentroidSinglePoint(t *testing.T) {
	c := Centroid([]models.CanonicalRow{{Latitude: 49.28, Longitude: -123.12}})
	assert.InDelta(t, 49.28, c.Latitude, 1e-9)
	assert.InDelta(t, -123.12, c.Longitude, 1e-9)
}

func TestCentroidEmpty(t *testing.T) {
	assert.Equal(t, models.Coordinates{}, Centroid(nil))
}

func TestCentroidAcrossAntimeridian(t *testing.T) {
	c := Centroid([]models.CanonicalRow{
		{Latitude: 0, Longitude: 179},
		{Latitude: 0, Longitude: -179},
	})
	assert.InDelta(t, 180, abs(c.Longitude), 1e-6)
}

func TestBoundsOf(t *testing.T) {
	assert.Nil(t, BoundsOf(nil))

	b := BoundsOf(rows())
	require.NotNil(t, b)
	assert.InDelta(t, 49.17, b.South, 1e-9)
	assert.InDelta(t, 49.28, b.North, 1e-9)
	assert.InDelta(t, -123.13, b.West, 1e-9)
	assert.InDelta(t, -123.10, b.East, 1e-9)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
