package models

import (
	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/mapview"
	"github.com/vnsites/sitemap/internal/route"
)

// MapEntry is the payload of the map endpoint: everything a client needs to
// draw one render pass.
type MapEntry struct {
	Policy       route.Policy          `json:"policy"`
	SiteCount    int                   `json:"siteCount"`
	Map          appconf.MapDefaults   `json:"map"`
	Bounds       mapview.Bounds        `json:"bounds"`
	StatusLayers []mapview.MarkerLayer `json:"statusLayers"`
	RouteLayers  []RouteEntry          `json:"routeLayers"`
}

func NewMapEntry(view *mapview.View, defaults appconf.MapDefaults) MapEntry {
	routes := make([]RouteEntry, 0, len(view.RouteLayers))
	for i := range view.RouteLayers {
		routes = append(routes, NewRouteEntry(&view.RouteLayers[i]))
	}

	return MapEntry{
		Policy:       view.Policy,
		SiteCount:    view.SiteCount,
		Map:          defaults,
		Bounds:       view.Bounds,
		StatusLayers: view.StatusLayers,
		RouteLayers:  routes,
	}
}

// FiltersEntry lists the selectable values of each filter field.
type FiltersEntry struct {
	Regions   []string `json:"regions"`
	Provinces []string `json:"provinces"`
	Statuses  []string `json:"statuses"`
}
