package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vnsites/sitemap/internal/app"
	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/logging"
	"github.com/vnsites/sitemap/internal/restapi"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sitedata"
	"github.com/vnsites/sitemap/internal/webui"
)

func main() {
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.LevelFor(cfg.Verbose))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager, err := sitedata.InitManager(ctx, sitedata.Config{
		SitesSource:     cfg.SitesSource,
		RoutesSource:    cfg.RoutesSource,
		DataPath:        cfg.DataPath,
		RefreshInterval: cfg.RefreshInterval,
		Env:             cfg.Env,
		Verbose:         cfg.Verbose,
		Logger:          logger,
	})
	if err != nil {
		logging.LogError(logger, "failed to load site data", err,
			slog.String("sites", cfg.SitesSource),
			slog.String("routes", cfg.RoutesSource))
		os.Exit(1)
	}
	defer manager.Shutdown()

	stats := manager.Statistics()
	logger.Info("site data loaded",
		slog.Int("sites", stats.Sites),
		slog.Int("waypoints", stats.Waypoints),
		slog.Bool("remote", stats.Remote))

	application := &app.Application{
		Config:  cfg,
		Logger:  logger,
		Manager: manager,
	}

	api, handler := buildHandler(application)
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	if err := run(ctx, srv, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		api.Shutdown()
		manager.Shutdown()
		os.Exit(1)
	}
}

// buildHandler mounts the API and the web page on one router.
func buildHandler(application *app.Application) (*restapi.RestAPI, http.Handler) {
	api := restapi.NewRestAPI(application)
	ui := &webui.WebUI{Application: application}

	router := httprouter.New()
	api.SetRoutes(router)
	ui.SetWebUIRoutes(router)

	return api, api.Handler(router)
}

// run serves until ctx is cancelled, then drains open requests.
func run(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// parseConfig reads the command line into a Config.
func parseConfig(fs *flag.FlagSet, args []string) (appconf.Config, error) {
	var cfg appconf.Config
	var envFlag, apiKeysFlag, policyFlag string

	cfg.Map = appconf.DefaultMapDefaults()

	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per API key (negative disables limiting)")
	fs.StringVar(&cfg.SitesSource, "sites", "Overall.csv", "Site table: local path or http(s) URL")
	fs.StringVar(&cfg.RoutesSource, "routes", "Route.csv", "Route waypoint table: local path or http(s) URL (empty for none)")
	fs.StringVar(&cfg.DataPath, "data-path", "./sitemap.db", "SQLite database path (:memory: for an in-memory store)")
	fs.DurationVar(&cfg.RefreshInterval, "refresh", sitedata.DefaultRefreshInterval, "Refresh interval for remote tables")
	fs.StringVar(&policyFlag, "stitch-policy", "strict", "How consecutive route segments connect (strict|bridging)")
	fs.StringVar(&cfg.Map.Style, "map-style", cfg.Map.Style, "Map style URL")
	fs.StringVar(&cfg.Map.AccessToken, "mapbox-token", "", "Public map access token for the web page")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	if apiKeysFlag != "" {
		for _, key := range strings.Split(apiKeysFlag, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.ApiKeys = append(cfg.ApiKeys, key)
			}
		}
	}

	policy, err := route.ParsePolicy(policyFlag)
	if err != nil {
		return cfg, fmt.Errorf("invalid -stitch-policy: %w", err)
	}
	cfg.StitchPolicy = policy

	return cfg, nil
}
