package sitedata

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vnsites/sitemap/internal/dataset"
	"github.com/vnsites/sitemap/internal/logging"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sites"
)

type tables struct {
	sites       []sites.Site
	waypoints   []route.Waypoint
	siteReport  dataset.Report
	routeReport dataset.Report
}

// loadTables reads both tables. Without a route source the route table is empty.
func loadTables(ctx context.Context, config Config, logger *slog.Logger) (tables, error) {
	var out tables

	err := withSource(ctx, config.SitesSource, logger, func(r io.Reader) error {
		var err error
		out.sites, out.siteReport, err = dataset.LoadSites(r)
		return err
	})
	if err != nil {
		return tables{}, fmt.Errorf("error loading site table: %w", err)
	}

	if config.RoutesSource == "" {
		return out, nil
	}

	err = withSource(ctx, config.RoutesSource, logger, func(r io.Reader) error {
		var err error
		out.waypoints, out.routeReport, err = dataset.LoadWaypoints(r)
		return err
	})
	if err != nil {
		return tables{}, fmt.Errorf("error loading route table: %w", err)
	}

	return out, nil
}

func withSource(ctx context.Context, source string, logger *slog.Logger, read func(io.Reader) error) (err error) {
	rc, err := dataset.Open(ctx, source)
	if err != nil {
		return err
	}
	defer logging.HandleDeferredError(&err, rc.Close, logger, "close_table_source")

	return read(rc)
}
