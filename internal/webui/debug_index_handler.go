package webui

import (
	"context"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"github.com/vnsites/sitemap/internal/route"
)

type debugData struct {
	Title string
	Key   string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, key, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := templates.ExecuteTemplate(w, "debug_index.html", debugData{
		Title: title,
		Key:   key,
		Pre:   spew.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugPayload(ctx context.Context, dataType string) (string, interface{}, error) {
	switch dataType {
	case "sites", "waypoints", "groups":
		snapshot, err := webUI.Manager.Snapshot(ctx)
		if err != nil {
			return "", nil, err
		}
		switch dataType {
		case "sites":
			return "Sites", snapshot.Sites, nil
		case "waypoints":
			return "Route Waypoints", snapshot.Waypoints, nil
		default:
			return "Route Groups", route.Group(snapshot.Waypoints), nil
		}
	case "filters":
		options, err := webUI.Manager.FilterOptions(ctx)
		return "Filter Options", options, err
	case "stats":
		return "Store Statistics", webUI.Manager.Statistics(), nil
	default:
		return "Choose a data type", map[string]string{
			"error": "Please use one of the following: sites, waypoints, groups, filters, stats.",
		}, nil
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.RequestHasInvalidAPIKey(r) {
		http.Error(w, "permission denied", http.StatusUnauthorized)
		return
	}

	title, data, err := webUI.debugPayload(r.Context(), r.URL.Query().Get("dataType"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeDebugData(w, r.URL.Query().Get("key"), title, data)
}
