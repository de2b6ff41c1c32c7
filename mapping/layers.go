package mapping

import (
	"fmt"

	"business-heatmap/models"
)

// HeatOptions are the fixed intensity-scaling parameters of every density
// layer.
var HeatOptions = models.HeatOptions{
	MinOpacity: 0.2,
	MaxValue:   5.0,
	Radius:     17,
	Blur:       15,
	MaxZoom:    1,
}

// BuildLayer converts rows into a layer of the given kind. An empty row list
// yields a valid layer with an empty payload; only an unknown kind is an
// error.
func BuildLayer(rows []models.CanonicalRow, kind models.LayerKind, name string, show bool) (models.MapLayer, error) {
	switch kind {
	case models.LayerDensity:
		return DensityLayer(rows, name, show), nil
	case models.LayerMarkers:
		return MarkerLayer(rows, name, show), nil
	default:
		return models.MapLayer{}, fmt.Errorf("mapping: unknown layer kind %q", kind)
	}
}

// DensityLayer builds a heat layer with one (lat, lon, weight) point per
// row, in row order.
func DensityLayer(rows []models.CanonicalRow, name string, show bool) models.MapLayer {
	points := make([]models.HeatPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.HeatPoint{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Weight:    r.Weight,
		})
	}
	return models.MapLayer{
		Name:    name,
		Show:    show,
		Kind:    models.LayerDensity,
		Density: &models.DensityPayload{Points: points, Options: HeatOptions},
	}
}

// MarkerLayer builds one pin per row labelled with the business name.
func MarkerLayer(rows []models.CanonicalRow, name string, show bool) models.MapLayer {
	markers := make([]models.Marker, 0, len(rows))
	for _, r := range rows {
		markers = append(markers, models.Marker{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Label:     r.Name,
		})
	}
	return models.MapLayer{
		Name:    name,
		Show:    show,
		Kind:    models.LayerMarkers,
		Markers: &models.MarkerPayload{Markers: markers},
	}
}
