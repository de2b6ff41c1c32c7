package mapping

import (
	"fmt"

	"business-heatmap/models"
)

const (
	DefaultZoom = 11

	EqualWeightLayerName = "Heat Map (Equal Weight)"
	WeightedLayerName    = "Heat Map (Weighted by Rating)"
	MarkerLayerName      = "Location Labels"
)

// Assemble composes a base map centered on center with the given layers, in
// order, and a layer control listing each of them with its default
// visibility.
func Assemble(center models.Coordinates, zoom int, layers ...models.MapLayer) *models.MapDocument {
	doc := &models.MapDocument{
		Center:  center,
		Zoom:    zoom,
		Layers:  make([]models.MapLayer, 0, len(layers)),
		Control: models.LayerControl{Collapsed: false, Entries: make([]models.LayerToggle, 0, len(layers))},
	}
	for _, l := range layers {
		doc.Layers = append(doc.Layers, l)
		doc.Control.Entries = append(doc.Control.Entries, models.LayerToggle{Name: l.Name, Visible: l.Show})
	}
	return doc
}

// BuildSessionMap builds the standard three-layer map for a session: the
// equal-weight density layer shown, the rating-weighted density layer and
// the business labels hidden. Only one density layer is visible at first so
// the two surfaces are not stacked on top of each other.
func BuildSessionMap(s *models.SearchSession, zoom int) *models.MapDocument {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	doc := Assemble(s.Center, zoom,
		DensityLayer(s.EqualRows, EqualWeightLayerName, true),
		DensityLayer(s.WeightedRows, WeightedLayerName, false),
		MarkerLayer(s.WeightedRows, MarkerLayerName, false),
	)
	doc.Title = fmt.Sprintf("%s in %s", s.Query.Category, s.Query.Location)
	doc.Bounds = BoundsOf(s.EqualRows)
	return doc
}
