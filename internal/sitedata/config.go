package sitedata

import (
	"log/slog"
	"time"

	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/dataset"
)

// DefaultRefreshInterval is how often remote tables are downloaded again.
const DefaultRefreshInterval = 24 * time.Hour

type Config struct {
	SitesSource     string
	RoutesSource    string
	DataPath        string
	RefreshInterval time.Duration
	Env             appconf.Environment
	Verbose         bool
	Logger          *slog.Logger
}

func (config Config) remote() bool {
	return dataset.IsRemote(config.SitesSource) || dataset.IsRemote(config.RoutesSource)
}

func (config Config) refreshInterval() time.Duration {
	if config.RefreshInterval <= 0 {
		return DefaultRefreshInterval
	}
	return config.RefreshInterval
}
