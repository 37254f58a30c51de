// Package mapview turns filtered sites and route waypoints into the marker
// and line layers a map renderer draws.
package mapview

import (
	"errors"
	"fmt"

	"github.com/vnsites/sitemap/internal/palette"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sites"
	"github.com/vnsites/sitemap/internal/utils"
)

// ErrNoData signals that the filters left no site to show. It is a normal
// outcome, not a failure.
var ErrNoData = errors.New("no data to display")

// ErrRouteNotFound is returned by BuildRoute for an unknown source.
var ErrRouteNotFound = errors.New("route source not found")

// BuildError reports a failure while building one layer kind.
type BuildError struct {
	Stage string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building %s layers: %v", e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Request carries the per-render inputs.
type Request struct {
	Filter sites.Filter
	Policy route.Policy
}

type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// MarkerLayer holds the sites of one status.
type MarkerLayer struct {
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Markers []Marker `json:"markers"`
}

// SegmentSummary describes one segment. Heading is the compass direction
// from its first to its last waypoint, empty for single-point segments.
type SegmentSummary struct {
	Name     string `json:"name"`
	OrderKey int    `json:"orderKey"`
	Points   int    `json:"points"`
	Heading  string `json:"heading"`
}

// RouteSummary lists one route source and its segments without stitching it.
type RouteSummary struct {
	SourceID  string           `json:"sourceId"`
	Color     string           `json:"color"`
	Waypoints int              `json:"waypoints"`
	Segments  []SegmentSummary `json:"segments"`
}

// RouteLayer holds one route source: its markers and its line, drawn in the
// same color.
type RouteLayer struct {
	SourceID string           `json:"sourceId"`
	Color    string           `json:"color"`
	Policy   route.Policy     `json:"policy,omitempty"`
	Markers  []Marker         `json:"markers"`
	Polyline route.Polyline   `json:"-"`
	Paths    [][]route.Vertex `json:"-"`
	Segments []SegmentSummary `json:"segments"`
}

// View is everything one render pass produces.
type View struct {
	Policy       route.Policy  `json:"policy"`
	SiteCount    int           `json:"siteCount"`
	StatusLayers []MarkerLayer `json:"statusLayers"`
	RouteLayers  []RouteLayer  `json:"routeLayers"`
	Bounds       Bounds        `json:"bounds"`
}

// Build filters the sites and lays out every layer. It returns ErrNoData when
// the filter leaves no site, and a *BuildError for anything else.
// Route layers are only built when the filter asks for routes.
func Build(allSites []sites.Site, waypoints []route.Waypoint, req Request) (*View, error) {
	if !req.Policy.Valid() {
		return nil, &BuildError{Stage: "route", Err: route.ErrUnknownPolicy}
	}

	filtered := req.Filter.Apply(allSites)
	if len(filtered) == 0 {
		return nil, ErrNoData
	}

	view := &View{
		Policy:       req.Policy,
		SiteCount:    len(filtered),
		StatusLayers: statusLayers(filtered),
		RouteLayers:  []RouteLayer{},
		Bounds:       BoundsOf(filtered),
	}

	if !req.Filter.ShowRoutes {
		return view, nil
	}

	layers, err := routeLayers(waypoints, req.Policy)
	if err != nil {
		return nil, &BuildError{Stage: "route", Err: err}
	}
	view.RouteLayers = layers

	return view, nil
}

func statusLayers(filtered []sites.Site) []MarkerLayer {
	statuses := make([]string, 0, len(filtered))
	for _, s := range filtered {
		statuses = append(statuses, s.Status)
	}
	colors := palette.Assign(palette.Safe, statuses)

	index := make(map[string]int)
	var layers []MarkerLayer
	for _, s := range filtered {
		i, ok := index[s.Status]
		if !ok {
			i = len(layers)
			index[s.Status] = i
			layers = append(layers, MarkerLayer{Name: s.Status, Color: colors[s.Status]})
		}
		layers[i].Markers = append(layers[i].Markers, Marker{Lat: s.Lat, Lon: s.Lon, Label: s.Name})
	}
	return layers
}

func sourceColors(waypoints []route.Waypoint) map[string]string {
	sources := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		sources = append(sources, w.SourceID)
	}
	return palette.Assign(palette.Set2, sources)
}

func routeLayers(waypoints []route.Waypoint, policy route.Policy) ([]RouteLayer, error) {
	colors := sourceColors(waypoints)
	groups := route.Group(waypoints)

	layers := make([]RouteLayer, 0, len(groups))
	for _, group := range groups {
		layer, err := routeLayer(group, policy, colors[group.SourceID])
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

func routeLayer(group route.RouteGroup, policy route.Policy, color string) (RouteLayer, error) {
	stitched, err := route.Stitch(group, policy)
	if err != nil {
		return RouteLayer{}, err
	}

	markers := make([]Marker, 0, len(stitched.Markers))
	for _, w := range stitched.Markers {
		markers = append(markers, Marker{Lat: w.Lat, Lon: w.Lon, Label: w.Label()})
	}

	return RouteLayer{
		SourceID: group.SourceID,
		Color:    color,
		Policy:   policy,
		Markers:  markers,
		Polyline: stitched.Polyline,
		Paths:    stitched.Paths,
		Segments: summarize(group),
	}, nil
}

// BuildRoute lays out the single route source sourceID. Colors are assigned
// across all waypoints so they match the full map.
func BuildRoute(waypoints []route.Waypoint, sourceID string, policy route.Policy) (*RouteLayer, error) {
	if !policy.Valid() {
		return nil, &BuildError{Stage: "route", Err: route.ErrUnknownPolicy}
	}

	colors := sourceColors(waypoints)
	color, ok := colors[sourceID]
	if !ok {
		return nil, ErrRouteNotFound
	}

	for _, group := range route.Group(waypoints) {
		if group.SourceID != sourceID {
			continue
		}
		layer, err := routeLayer(group, policy, color)
		if err != nil {
			return nil, &BuildError{Stage: "route", Err: err}
		}
		return &layer, nil
	}
	return nil, ErrRouteNotFound
}

// Summaries describes every route source without stitching it.
func Summaries(waypoints []route.Waypoint) []RouteSummary {
	colors := sourceColors(waypoints)
	groups := route.Group(waypoints)

	out := make([]RouteSummary, 0, len(groups))
	for _, group := range groups {
		out = append(out, RouteSummary{
			SourceID:  group.SourceID,
			Color:     colors[group.SourceID],
			Waypoints: len(group.Waypoints()),
			Segments:  summarize(group),
		})
	}
	return out
}

func summarize(group route.RouteGroup) []SegmentSummary {
	out := make([]SegmentSummary, 0, len(group.Segments))
	for _, s := range group.Segments {
		summary := SegmentSummary{Name: s.Name, OrderKey: s.OrderKey, Points: len(s.Waypoints)}
		if len(s.Waypoints) > 1 {
			first, last := s.First(), s.Last()
			summary.Heading = utils.CompassDirection(first.Lat, first.Lon, last.Lat, last.Lon)
		}
		out = append(out, summary)
	}
	return out
}
