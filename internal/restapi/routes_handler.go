package restapi

import (
	"errors"
	"net/http"
	"slices"

	"github.com/vnsites/sitemap/internal/mapview"
	"github.com/vnsites/sitemap/internal/models"
	"github.com/vnsites/sitemap/internal/utils"
)

func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := api.Manager.Snapshot(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(mapview.Summaries(snapshot.Waypoints)))
}

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	sourceID := utils.ExtractIDFromParams(r, "id")
	fieldErrors := make(map[string][]string)
	if err := utils.ValidateSourceID(sourceID); err != nil {
		fieldErrors["id"] = append(fieldErrors["id"], err.Error())
	}
	policy := api.parsePolicy(r, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ctx := r.Context()

	sources, err := api.Manager.RouteSources(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !slices.Contains(sources, sourceID) {
		api.sendNotFound(w, r)
		return
	}

	snapshot, err := api.Manager.Snapshot(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	layer, err := mapview.BuildRoute(snapshot.Waypoints, sourceID, policy)
	if errors.Is(err, mapview.ErrRouteNotFound) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.buildErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewRouteEntry(layer)))
}
