package mapview

import "github.com/vnsites/sitemap/internal/sites"

// Bounds is the centre and extent of a set of sites, in degrees.
type Bounds struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	LatSpan float64 `json:"latSpan"`
	LonSpan float64 `json:"lonSpan"`
}

// BoundsOf returns the bounding box of filtered. Empty input yields zero Bounds.
func BoundsOf(filtered []sites.Site) Bounds {
	var minLat, maxLat, minLon, maxLon float64
	first := true
	for _, s := range filtered {
		if first {
			minLat, maxLat = s.Lat, s.Lat
			minLon, maxLon = s.Lon, s.Lon
			first = false
			continue
		}

		if s.Lat < minLat {
			minLat = s.Lat
		}
		if s.Lat > maxLat {
			maxLat = s.Lat
		}
		if s.Lon < minLon {
			minLon = s.Lon
		}
		if s.Lon > maxLon {
			maxLon = s.Lon
		}
	}

	return Bounds{
		Lat:     (minLat + maxLat) / 2,
		Lon:     (minLon + maxLon) / 2,
		LatSpan: maxLat - minLat,
		LonSpan: maxLon - minLon,
	}
}
