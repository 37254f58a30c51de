package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/vnsites/sitemap/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	if response.Code != 0 && response.Code != http.StatusOK {
		w.WriteHeader(response.Code)
	}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.logger(r).Error("failed to encode response", "error", err)
	}
}

// NoDataHeader is set on every no-data reply, whatever the endpoint's usual
// content type.
const NoDataHeader = "X-No-Data"

func (api *RestAPI) sendNoData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(NoDataHeader, "true")
	api.sendResponse(w, r, models.NewNoDataResponse())
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
