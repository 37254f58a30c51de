package restapi

import (
	"net/http"
	"strings"

	"github.com/vnsites/sitemap/internal/mapview"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sites"
	"github.com/vnsites/sitemap/internal/utils"
)

// parsePolicy returns the configured policy unless the request names another.
func (api *RestAPI) parsePolicy(r *http.Request, fieldErrors map[string][]string) route.Policy {
	name := strings.TrimSpace(r.URL.Query().Get("policy"))
	if name == "" {
		return api.Config.StitchPolicy
	}

	policy, err := route.ParsePolicy(name)
	if err != nil {
		fieldErrors["policy"] = append(fieldErrors["policy"], err.Error())
	}
	return policy
}

// parseMapRequest reads the filter selection and policy from the query string.
func (api *RestAPI) parseMapRequest(r *http.Request) (mapview.Request, map[string][]string) {
	params := r.URL.Query()
	fieldErrors := make(map[string][]string)

	var filter sites.Filter
	filter.Regions, fieldErrors = utils.ParseListParam(params, string(sites.FieldRegion), fieldErrors)
	filter.Provinces, fieldErrors = utils.ParseListParam(params, string(sites.FieldProvince), fieldErrors)
	filter.Statuses, fieldErrors = utils.ParseListParam(params, string(sites.FieldStatus), fieldErrors)
	filter.ShowRoutes, fieldErrors = utils.ParseBoolParam(params, "routes", fieldErrors)

	return mapview.Request{
		Filter: filter,
		Policy: api.parsePolicy(r, fieldErrors),
	}, fieldErrors
}
