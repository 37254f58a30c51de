package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vnsites/sitemap/internal/app"
	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sitedata"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(newFlagSet(), nil)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, appconf.Development, cfg.Env)
	assert.Equal(t, []string{"test"}, cfg.ApiKeys)
	assert.Equal(t, route.Strict, cfg.StitchPolicy)
	assert.Equal(t, sitedata.DefaultRefreshInterval, cfg.RefreshInterval)
	assert.Equal(t, appconf.DefaultMapDefaults().Style, cfg.Map.Style)
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := parseConfig(newFlagSet(), []string{
		"-port", "8080",
		"-env", "production",
		"-api-keys", "a, b,,c",
		"-stitch-policy", "Bridging",
		"-refresh", "1h",
		"-routes", "",
		"-mapbox-token", "pk.abc",
	})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, appconf.Production, cfg.Env)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.ApiKeys)
	assert.Equal(t, route.Bridging, cfg.StitchPolicy)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Empty(t, cfg.RoutesSource)
	assert.Equal(t, "pk.abc", cfg.Map.AccessToken)
}

func TestParseConfigRejectsUnknownPolicy(t *testing.T) {
	_, err := parseConfig(newFlagSet(), []string{"-stitch-policy", "auto"})
	require.Error(t, err)
	assert.ErrorIs(t, err, route.ErrUnknownPolicy)
}

func TestBuildHandlerServesPageAndAPI(t *testing.T) {
	sitesPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", "Overall.csv"))
	require.NoError(t, err)
	routesPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", "Route.csv"))
	require.NoError(t, err)

	cfg, err := parseConfig(newFlagSet(), []string{
		"-env", "test",
		"-api-keys", "TEST",
		"-sites", sitesPath,
		"-routes", routesPath,
		"-data-path", ":memory:",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	manager, err := sitedata.InitManager(ctx, sitedata.Config{
		SitesSource:  cfg.SitesSource,
		RoutesSource: cfg.RoutesSource,
		DataPath:     cfg.DataPath,
		Env:          cfg.Env,
	})
	require.NoError(t, err)
	defer manager.Shutdown()

	api, handler := buildHandler(&app.Application{Config: cfg, Manager: manager})
	defer api.Shutdown()

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, err = http.Get(server.URL + "/api/map.json?key=TEST")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}
