package route

// Vertex is one entry of a polyline. A vertex with Break set carries no
// coordinates and tells the renderer not to connect across it.
type Vertex struct {
	Lat   float64
	Lon   float64
	Break bool
}

// BreakVertex is the line break marker.
var BreakVertex = Vertex{Break: true}

func vertexOf(w Waypoint) Vertex {
	return Vertex{Lat: w.Lat, Lon: w.Lon}
}

// Polyline is a sequence of connected vertex pairs, each closed by a break.
type Polyline []Vertex

// Pairs returns every connected vertex pair in emission order.
func (p Polyline) Pairs() [][2]Vertex {
	var pairs [][2]Vertex
	var run []Vertex
	for _, v := range p {
		if v.Break {
			for i := 0; i+1 < len(run); i++ {
				pairs = append(pairs, [2]Vertex{run[i], run[i+1]})
			}
			run = run[:0]
			continue
		}
		run = append(run, v)
	}
	for i := 0; i+1 < len(run); i++ {
		pairs = append(pairs, [2]Vertex{run[i], run[i+1]})
	}
	return pairs
}

// Coordinates splits the polyline into parallel latitude and longitude
// columns with nil at every break, the layout map scatter layers consume.
func (p Polyline) Coordinates() (lats, lons []*float64) {
	lats = make([]*float64, 0, len(p))
	lons = make([]*float64, 0, len(p))
	for _, v := range p {
		if v.Break {
			lats = append(lats, nil)
			lons = append(lons, nil)
			continue
		}
		lat, lon := v.Lat, v.Lon
		lats = append(lats, &lat)
		lons = append(lons, &lon)
	}
	return lats, lons
}

// Stitched is the render-ready form of one route group.
type Stitched struct {
	SourceID string
	Policy   Policy
	// Markers holds every waypoint in segment order, then in-segment order.
	Markers  []Waypoint
	Polyline Polyline
	// Paths are the maximal continuous runs of the polyline. Wire formats that
	// cannot express breaks (encoded polylines, GeoJSON) are built from these.
	Paths [][]Vertex
}

// Stitch lays out one route group under policy.
//
// Every adjacent pair inside a segment is emitted as [a, b, BREAK]. Under
// Bridging, the last waypoint of each segment is additionally paired with the
// first waypoint of the following segment. Under Strict no such pair exists.
// An empty group yields empty output.
func Stitch(group RouteGroup, policy Policy) (Stitched, error) {
	if !policy.Valid() {
		return Stitched{}, ErrUnknownPolicy
	}
	if err := validateGroup(group); err != nil {
		return Stitched{}, err
	}

	out := Stitched{
		SourceID: group.SourceID,
		Policy:   policy,
		Markers:  group.Waypoints(),
		Polyline: Polyline{},
	}

	for i, segment := range group.Segments {
		for j := 0; j+1 < len(segment.Waypoints); j++ {
			out.Polyline = append(out.Polyline,
				vertexOf(segment.Waypoints[j]),
				vertexOf(segment.Waypoints[j+1]),
				BreakVertex)
		}

		if policy == Bridging && i+1 < len(group.Segments) {
			out.Polyline = append(out.Polyline,
				vertexOf(segment.Last()),
				vertexOf(group.Segments[i+1].First()),
				BreakVertex)
		}
	}

	out.Paths = paths(group, policy)
	return out, nil
}

func paths(group RouteGroup, policy Policy) [][]Vertex {
	var out [][]Vertex
	if policy == Bridging {
		var path []Vertex
		for _, wp := range group.Waypoints() {
			path = append(path, vertexOf(wp))
		}
		if len(path) > 1 {
			out = append(out, path)
		}
		return out
	}

	for _, segment := range group.Segments {
		if len(segment.Waypoints) < 2 {
			continue
		}
		path := make([]Vertex, 0, len(segment.Waypoints))
		for _, wp := range segment.Waypoints {
			path = append(path, vertexOf(wp))
		}
		out = append(out, path)
	}
	return out
}

func validateGroup(group RouteGroup) error {
	for _, segment := range group.Segments {
		if len(segment.Waypoints) == 0 {
			return &StructureError{SourceID: group.SourceID, Segment: segment.Name, Err: ErrEmptySegment}
		}
		if segment.SourceID != group.SourceID {
			return &StructureError{SourceID: group.SourceID, Segment: segment.Name, Err: ErrMixedSources}
		}
		for _, wp := range segment.Waypoints {
			if wp.SourceID != group.SourceID {
				return &StructureError{SourceID: group.SourceID, Segment: segment.Name, Err: ErrMixedSources}
			}
		}
	}
	return nil
}

// Assemble groups waypoints and stitches every resulting route group.
func Assemble(waypoints []Waypoint, policy Policy) ([]Stitched, error) {
	if !policy.Valid() {
		return nil, ErrUnknownPolicy
	}

	groups := Group(waypoints)
	out := make([]Stitched, 0, len(groups))
	for _, group := range groups {
		stitched, err := Stitch(group, policy)
		if err != nil {
			return nil, err
		}
		out = append(out, stitched)
	}
	return out, nil
}
