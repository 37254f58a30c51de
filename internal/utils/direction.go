package utils

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Bearing is the initial great-circle bearing from one point to another,
// normalised to [0, 360).
func Bearing(fromLat, fromLon, toLat, toLon float64) float64 {
	b := geo.Bearing(orb.Point{fromLon, fromLat}, orb.Point{toLon, toLat})
	return math.Mod(b+360, 360)
}

// Compass names the 8-point sector a bearing falls in.
func Compass(bearing float64) string {
	sector := int(math.Floor(math.Mod(bearing+22.5+360, 360) / 45))
	return compassPoints[sector%len(compassPoints)]
}

// CompassDirection is the 8-point heading of a segment drawn from its first
// point to its last. Identical endpoints read as "N".
func CompassDirection(fromLat, fromLon, toLat, toLon float64) string {
	return Compass(Bearing(fromLat, fromLon, toLat, toLon))
}
