package webui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vnsites/sitemap/internal/app"
	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sitedata"
)

func createTestWebUI(t *testing.T) http.Handler {
	t.Helper()

	sitesPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", "Overall.csv"))
	require.NoError(t, err)
	routesPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", "Route.csv"))
	require.NoError(t, err)

	manager, err := sitedata.InitManager(context.Background(), sitedata.Config{
		SitesSource:  sitesPath,
		RoutesSource: routesPath,
		DataPath:     ":memory:",
		Env:          appconf.Test,
	})
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	defaults := appconf.DefaultMapDefaults()
	defaults.AccessToken = "pk.test-token"

	webUI := &WebUI{Application: &app.Application{
		Config: appconf.Config{
			ApiKeys:      []string{"TEST"},
			StitchPolicy: route.Bridging,
			Map:          defaults,
		},
		Manager: manager,
	}}

	router := httprouter.New()
	webUI.SetWebUIRoutes(router)
	return router
}

func get(t *testing.T, handler http.Handler, path string) (*http.Response, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndexPage(t *testing.T) {
	resp, body := get(t, createTestWebUI(t), "/?key=TEST")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, `data-token="pk.test-token"`)
	assert.Contains(t, body, `data-map-style="mapbox://styles/mapbox/streets-v12"`)
	assert.Contains(t, body, `data-policy="bridging"`)
	assert.Contains(t, body, `data-zoom="5"`)
	assert.Contains(t, body, `/static/map.js`)
}

func TestStaticAssets(t *testing.T) {
	handler := createTestWebUI(t)

	resp, body := get(t, handler, "/static/map.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/api/map.json")

	resp, _ = get(t, handler, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDebugIndex(t *testing.T) {
	handler := createTestWebUI(t)

	tests := []struct {
		dataType string
		title    string
		contains string
	}{
		{dataType: "sites", title: "Sites", contains: "HN-0001"},
		{dataType: "waypoints", title: "Route Waypoints", contains: "saigon-loop.kml"},
		{dataType: "groups", title: "Route Groups", contains: "Chang 3"},
		{dataType: "filters", title: "Filter Options", contains: "Central"},
		{dataType: "stats", title: "Store Statistics", contains: "Waypoints"},
		{dataType: "", title: "Choose a data type", contains: "Please use one of the following"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			resp, body := get(t, handler, "/debug/?key=TEST&dataType="+tt.dataType)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "<h1>"+tt.title+"</h1>")
			assert.Contains(t, body, tt.contains)
			assert.Contains(t, body, "?key=TEST&amp;dataType=sites")
		})
	}
}

func TestDebugIndexRequiresKey(t *testing.T) {
	resp, _ := get(t, createTestWebUI(t), "/debug/?dataType=sites")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
