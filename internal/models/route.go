package models

import (
	"github.com/vnsites/sitemap/internal/mapview"
	"github.com/vnsites/sitemap/internal/route"
)

// RouteEntry is one route source laid out for drawing. Lats and Lons are
// parallel columns with null at every line break; Shapes holds the same line
// as encoded polylines, one per continuous path.
type RouteEntry struct {
	SourceID string                   `json:"sourceId"`
	Color    string                   `json:"color"`
	Policy   route.Policy             `json:"policy"`
	Markers  []mapview.Marker         `json:"markers"`
	Lats     []*float64               `json:"lats"`
	Lons     []*float64               `json:"lons"`
	Shapes   []ShapeEntry             `json:"shapes"`
	Segments []mapview.SegmentSummary `json:"segments"`
}

func NewRouteEntry(layer *mapview.RouteLayer) RouteEntry {
	lats, lons := layer.Polyline.Coordinates()
	return RouteEntry{
		SourceID: layer.SourceID,
		Color:    layer.Color,
		Policy:   layer.Policy,
		Markers:  layer.Markers,
		Lats:     lats,
		Lons:     lons,
		Shapes:   NewShapeEntries(layer.Paths),
		Segments: layer.Segments,
	}
}
