package mapping

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"business-heatmap/models"
)

var documentTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var doc = {{.}};
var map = L.map("map").setView([doc.center.lat, doc.center.lon], doc.zoom);
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
var overlays = {};
doc.layers.forEach(function (layer) {
  var group = L.featureGroup();
  if (layer.kind === "density") {
    var o = layer.density.options;
    L.heatLayer(layer.density.points.map(function (p) { return [p.lat, p.lon, p.weight]; }), {
      minOpacity: o.min_opacity, max: o.max_val, radius: o.radius, blur: o.blur, maxZoom: o.max_zoom
    }).addTo(group);
  } else if (layer.kind === "markers") {
    layer.markers.markers.forEach(function (m) {
      L.marker([m.lat, m.lon]).bindTooltip(m.label).addTo(group);
    });
  }
  if (layer.show) { group.addTo(map); }
  overlays[layer.name] = group;
});
L.control.layers(null, overlays, { collapsed: doc.control.collapsed }).addTo(map);
</script>
</body>
</html>
`))

// RenderHTML writes doc as a standalone Leaflet page.
func RenderHTML(w io.Writer, doc *models.MapDocument) error {
	if err := documentTmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("mapping: render html: %w", err)
	}
	return nil
}

// WriteHTMLFile renders doc to path, creating parent directories.
func WriteHTMLFile(path string, doc *models.MapDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mapping: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mapping: create file %q: %w", path, err)
	}
	if err := RenderHTML(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
