package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
	"github.com/vnsites/sitemap/internal/app"
	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/logging"
	"github.com/vnsites/sitemap/internal/models"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sitedata"
)

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return path
}

// createTestApi creates a RestAPI backed by the testdata tables in an
// in-memory store. The manager is shut down with the test.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	return createTestApiWithRoutes(t, fixturePath(t, "Route.csv"))
}

// createTestApiWithRoutes is createTestApi with a different route table.
func createTestApiWithRoutes(t *testing.T, routesSource string) *RestAPI {
	t.Helper()

	config := appconf.Config{
		Env:          appconf.Test,
		ApiKeys:      []string{"TEST"},
		RateLimit:    100,
		StitchPolicy: route.Strict,
		Map:          appconf.DefaultMapDefaults(),
		SitesSource:  fixturePath(t, "Overall.csv"),
		RoutesSource: routesSource,
		DataPath:     ":memory:",
	}

	manager, err := sitedata.InitManager(context.Background(), sitedata.Config{
		SitesSource:  config.SitesSource,
		RoutesSource: config.RoutesSource,
		DataPath:     config.DataPath,
		Env:          config.Env,
	})
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	api := NewRestAPI(&app.Application{
		Config:  config,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Manager: manager,
	})
	t.Cleanup(api.Shutdown)
	return api
}

func createRouter(api *RestAPI) *httprouter.Router {
	router := httprouter.New()
	api.SetRoutes(router)
	return router
}

// createHandler returns the full middleware chain in front of the API routes.
func createHandler(api *RestAPI) http.Handler {
	return api.Handler(createRouter(api))
}

func createHandlerWithRequestLogging(api *RestAPI, logger *slog.Logger) http.Handler {
	return NewRequestLoggingMiddleware(logger)(createRouter(api))
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	resp, body := serveApiAndRetrieveRaw(t, api, endpoint)

	var response models.ResponseModel
	err := json.Unmarshal(body, &response)
	require.NoError(t, err)

	return resp, response
}

func serveApiAndRetrieveRaw(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	server := httptest.NewServer(createHandler(api))
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var raw json.RawMessage
	err = json.NewDecoder(resp.Body).Decode(&raw)
	require.NoError(t, err)

	return resp, raw
}

// entryOf returns data.entry of a decoded response.
func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}
