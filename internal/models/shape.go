package models

import (
	"github.com/twpayne/go-polyline"
	"github.com/vnsites/sitemap/internal/route"
)

// ShapeEntry is one continuous route path in encoded polyline form.
type ShapeEntry struct {
	Points string `json:"points"`
	Length int    `json:"length"`
	Levels string `json:"levels"`
}

// NewShapeEntry encodes path. Break vertices never appear inside a path, but
// are skipped if they do.
func NewShapeEntry(path []route.Vertex) ShapeEntry {
	coords := make([][]float64, 0, len(path))
	for _, v := range path {
		if v.Break {
			continue
		}
		coords = append(coords, []float64{v.Lat, v.Lon})
	}

	points := string(polyline.EncodeCoords(coords))
	return ShapeEntry{
		Points: points,
		Length: len(coords),
		Levels: "",
	}
}

// NewShapeEntries encodes every path in order.
func NewShapeEntries(paths [][]route.Vertex) []ShapeEntry {
	entries := make([]ShapeEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, NewShapeEntry(p))
	}
	return entries
}
