package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vnsites/sitemap/internal/mapview"
	"github.com/vnsites/sitemap/internal/models"
)

// buildView runs one render pass for the request. ok is false once an error
// response has been written. A nil view with ok set means no data.
func (api *RestAPI) buildView(w http.ResponseWriter, r *http.Request) (view *mapview.View, ok bool) {
	req, fieldErrors := api.parseMapRequest(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return nil, false
	}

	snapshot, err := api.Manager.Snapshot(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return nil, false
	}

	view, err = mapview.Build(snapshot.Sites, snapshot.Waypoints, req)
	if errors.Is(err, mapview.ErrNoData) {
		return nil, true
	}
	if err != nil {
		api.buildErrorResponse(w, r, err)
		return nil, false
	}
	return view, true
}

func (api *RestAPI) mapHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := api.buildView(w, r)
	if !ok {
		return
	}
	if view == nil {
		api.sendNoData(w, r)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewMapEntry(view, api.Config.Map)))
}

// mapGeoJSONHandler exports the same render pass as a bare FeatureCollection.
// An empty selection yields an empty collection.
func (api *RestAPI) mapGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := api.buildView(w, r)
	if !ok {
		return
	}
	// An empty FeatureCollection reads as "nothing matched" to GIS clients,
	// so no data gets the JSON envelope instead.
	if view == nil {
		api.sendNoData(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(mapview.FeatureCollection(view)); err != nil {
		api.logger(r).Error("failed to encode geojson", "error", err)
	}
}
