package models

// LayerKind is the payload type of a map layer.
type LayerKind string

const (
	LayerDensity LayerKind = "density"
	LayerMarkers LayerKind = "markers"
)

// HeatPoint is one weighted sample of a density layer.
type HeatPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Weight    float64 `json:"weight"`
}

// HeatOptions are the rendering parameters of a density layer.
type HeatOptions struct {
	MinOpacity float64 `json:"min_opacity"`
	MaxValue   float64 `json:"max_val"`
	Radius     int     `json:"radius"`
	Blur       int     `json:"blur"`
	MaxZoom    int     `json:"max_zoom"`
}

// DensityPayload is the data of a density (heat) layer.
type DensityPayload struct {
	Points  []HeatPoint `json:"points"`
	Options HeatOptions `json:"options"`
}

// Marker is one labelled pin of a marker layer.
type Marker struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Label     string  `json:"label"`
}

// MarkerPayload is the data of a marker layer.
type MarkerPayload struct {
	Markers []Marker `json:"markers"`
}

// MapLayer is a named, independently toggleable overlay. Exactly one of
// Density and Markers is set, matching Kind. Layers are not mutated after
// they are built.
type MapLayer struct {
	Name    string          `json:"name"`
	Show    bool            `json:"show"`
	Kind    LayerKind       `json:"kind"`
	Density *DensityPayload `json:"density,omitempty"`
	Markers *MarkerPayload  `json:"markers,omitempty"`
}

// Len returns the number of points or markers in the layer.
func (l MapLayer) Len() int {
	switch {
	case l.Density != nil:
		return len(l.Density.Points)
	case l.Markers != nil:
		return len(l.Markers.Markers)
	default:
		return 0
	}
}

// LayerToggle is one entry of the layer control.
type LayerToggle struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// LayerControl lists every overlay in stacking order.
type LayerControl struct {
	Collapsed bool          `json:"collapsed"`
	Entries   []LayerToggle `json:"entries"`
}

// Bounds is a lat/lon bounding box.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// MapDocument is the renderable map: base map parameters plus layers.
type MapDocument struct {
	Title   string       `json:"title"`
	Center  Coordinates  `json:"center"`
	Zoom    int          `json:"zoom"`
	Bounds  *Bounds      `json:"bounds,omitempty"`
	Layers  []MapLayer   `json:"layers"`
	Control LayerControl `json:"control"`
}
