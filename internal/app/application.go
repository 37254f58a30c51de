package app

import (
	"log/slog"

	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/sitedata"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Manager *sitedata.Manager
}
