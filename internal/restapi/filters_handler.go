package restapi

import (
	"net/http"

	"github.com/vnsites/sitemap/internal/models"
	"github.com/vnsites/sitemap/internal/sites"
)

func (api *RestAPI) filtersHandler(w http.ResponseWriter, r *http.Request) {
	options, err := api.Manager.FilterOptions(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.FiltersEntry{
		Regions:   options[sites.FieldRegion],
		Provinces: options[sites.FieldProvince],
		Statuses:  options[sites.FieldStatus],
	}))
}
