package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// rateLimited applies the per-key limiter when one is configured.
func (api *RestAPI) rateLimited(handler http.Handler) http.Handler {
	if api.limiter == nil {
		return handler
	}
	return api.limiter.Middleware(handler)
}

func (api *RestAPI) handle(router *httprouter.Router, path string, handler handlerFunc) {
	router.Handler(http.MethodGet, path, api.rateLimited(validateAPIKey(api, handler)))
}

// SetRoutes registers every API endpoint on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	api.handle(router, "/api/map.json", api.mapHandler)
	api.handle(router, "/api/map.geojson", api.mapGeoJSONHandler)
	api.handle(router, "/api/filters.json", api.filtersHandler)
	api.handle(router, "/api/routes.json", api.routesHandler)
	api.handle(router, "/api/route/:id", api.routeHandler)
	api.handle(router, "/api/status.json", api.statusHandler)
	api.handle(router, "/api/current-time.json", api.currentTimeHandler)

	router.NotFound = http.HandlerFunc(api.sendNotFound)
}

// Handler wraps next with the middleware every response passes through.
func (api *RestAPI) Handler(next http.Handler) http.Handler {
	handler := CompressionMiddleware(next)
	handler = api.WithSecurityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}
