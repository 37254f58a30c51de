package route

import "sort"

// Segment is the run of waypoints sharing one source and one segment name,
// kept in input order.
type Segment struct {
	SourceID  string     `json:"sourceId"`
	Name      string     `json:"name"`
	OrderKey  int        `json:"orderKey"`
	Waypoints []Waypoint `json:"waypoints"`
}

// First returns the first waypoint of the segment. Segments are never empty
// once built by Group.
func (s Segment) First() Waypoint {
	return s.Waypoints[0]
}

// Last returns the last waypoint of the segment.
func (s Segment) Last() Waypoint {
	return s.Waypoints[len(s.Waypoints)-1]
}

// RouteGroup holds every segment of one source, ordered by OrderKey.
type RouteGroup struct {
	SourceID string    `json:"sourceId"`
	Segments []Segment `json:"segments"`
}

// Waypoints flattens the group in segment order, then in-segment order.
func (g RouteGroup) Waypoints() []Waypoint {
	var count int
	for _, segment := range g.Segments {
		count += len(segment.Waypoints)
	}

	out := make([]Waypoint, 0, count)
	for _, segment := range g.Segments {
		out = append(out, segment.Waypoints...)
	}
	return out
}

type segmentKey struct {
	sourceID string
	name     string
}

// Group partitions waypoints by source and then by segment name.
//
// Groups come back in the order their source first appears in the input.
// Inside a group, segments are stable-sorted by OrderKey so equal keys keep
// first-appearance order; waypoints inside a segment are never reordered.
func Group(waypoints []Waypoint) []RouteGroup {
	if len(waypoints) == 0 {
		return nil
	}

	groupIndex := make(map[string]int)
	segmentIndex := make(map[segmentKey]int)
	var groups []RouteGroup

	for _, wp := range waypoints {
		gi, ok := groupIndex[wp.SourceID]
		if !ok {
			gi = len(groups)
			groupIndex[wp.SourceID] = gi
			groups = append(groups, RouteGroup{SourceID: wp.SourceID})
		}

		key := segmentKey{sourceID: wp.SourceID, name: wp.SegmentName}
		si, ok := segmentIndex[key]
		if !ok {
			si = len(groups[gi].Segments)
			segmentIndex[key] = si
			groups[gi].Segments = append(groups[gi].Segments, Segment{
				SourceID: wp.SourceID,
				Name:     wp.SegmentName,
				OrderKey: OrderKey(wp.SegmentName),
			})
		}

		segments := groups[gi].Segments
		segments[si].Waypoints = append(segments[si].Waypoints, wp)
	}

	for i := range groups {
		segments := groups[i].Segments
		sort.SliceStable(segments, func(a, b int) bool {
			return segments[a].OrderKey < segments[b].OrderKey
		})
	}

	return groups
}
