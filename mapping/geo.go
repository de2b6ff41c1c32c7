package mapping

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"business-heatmap/models"
)

// Centroid returns the spherical centroid of the rows' positions. It is
// used as the map center when the search response carries no region.
func Centroid(rows []models.CanonicalRow) models.Coordinates {
	if len(rows) == 0 {
		return models.Coordinates{}
	}
	var sum r3.Vector
	for _, r := range rows {
		sum = sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(r.Latitude, r.Longitude)).Vector)
	}
	if sum.Norm() == 0 {
		return models.Coordinates{Latitude: rows[0].Latitude, Longitude: rows[0].Longitude}
	}
	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return models.Coordinates{Latitude: ll.Lat.Degrees(), Longitude: ll.Lng.Degrees()}
}

// BoundsOf returns the smallest lat/lon rectangle holding every row, or nil
// for no rows.
func BoundsOf(rows []models.CanonicalRow) *models.Bounds {
	if len(rows) == 0 {
		return nil
	}
	rect := s2.EmptyRect()
	for _, r := range rows {
		rect = rect.AddPoint(s2.LatLngFromDegrees(r.Latitude, r.Longitude))
	}
	lo, hi := rect.Lo(), rect.Hi()
	return &models.Bounds{
		South: lo.Lat.Degrees(),
		West:  lo.Lng.Degrees(),
		North: hi.Lat.Degrees(),
		East:  hi.Lng.Degrees(),
	}
}
