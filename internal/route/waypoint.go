package route

import (
	"math"
	"unicode"
)

// Waypoint is one observation of a route source. Waypoints are treated as
// immutable values; nothing in this package writes through to caller slices.
type Waypoint struct {
	SourceID    string  `json:"sourceId"`
	SegmentName string  `json:"segmentName"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// OrderKey is the segment ordering key derived from the waypoint's segment name.
func (w Waypoint) OrderKey() int {
	return OrderKey(w.SegmentName)
}

// Label is the marker text shown for the waypoint.
func (w Waypoint) Label() string {
	return w.SegmentName + " (" + w.SourceID + ")"
}

// OrderKey parses the first maximal run of decimal digits in name. Any
// Unicode decimal digit counts, so "Tuyến ٣" and "Ｒ１２" order as 3 and 12.
// Names without digits order as 0. Runs too large for an int saturate at math.MaxInt.
func OrderKey(name string) int {
	key, found := 0, false
	for _, r := range name {
		if !unicode.IsDigit(r) {
			if found {
				break
			}
			continue
		}
		found = true
		d := digitValue(r)
		if key > (math.MaxInt-d)/10 {
			return math.MaxInt
		}
		key = key*10 + d
	}
	return key
}

// digitValue returns the value of a decimal digit rune. Decimal digits are
// encoded in contiguous runs that start at zero, so the value is the
// distance from the start of the run, modulo 10.
func digitValue(r rune) int {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}
