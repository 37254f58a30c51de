package sitedata

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vnsites/sitemap/internal/dataset"
	"github.com/vnsites/sitemap/internal/logging"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sites"
	"github.com/vnsites/sitemap/sitedb"
)

// Manager owns the site store and keeps it in sync with the table sources.
type Manager struct {
	DB           *sitedb.Client
	config       Config
	logger       *slog.Logger
	mu           sync.RWMutex
	lastUpdated  time.Time
	loadID       string
	lastSites    int
	lastRoutes   int
	lastError    error
	lastErrorAt  time.Time
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// Snapshot is one render pass worth of input data.
type Snapshot struct {
	Sites     []sites.Site
	Waypoints []route.Waypoint
}

// Statistics describes the currently loaded tables.
type Statistics struct {
	// LoadID changes every time the tables are replaced.
	LoadID       string    `json:"loadId"`
	SitesSource  string    `json:"sitesSource"`
	RoutesSource string    `json:"routesSource"`
	Sites        int       `json:"sites"`
	Waypoints    int       `json:"waypoints"`
	LastUpdated  time.Time `json:"lastUpdated"`
	Remote       bool      `json:"remote"`
	// LastError is the most recent failed load, cleared by the next
	// successful one. The data served is still from LastUpdated.
	LastError   string     `json:"lastError,omitempty"`
	LastErrorAt *time.Time `json:"lastErrorAt,omitempty"`
	// DataShape reports whether LastError came from a malformed table
	// rather than an unreachable source.
	DataShape bool `json:"dataShape,omitempty"`
}

// InitManager loads both tables into a fresh store. Remote sources are then
// refreshed in the background until Shutdown.
func InitManager(ctx context.Context, config Config) (*Manager, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sitedb.NewClient(sitedb.NewConfig(config.DataPath, config.Env, config.Verbose))
	if err != nil {
		return nil, fmt.Errorf("error building site database: %w", err)
	}

	manager := &Manager{
		DB:           db,
		config:       config,
		logger:       logger.With(slog.String("component", "sitedata")),
		shutdownChan: make(chan struct{}),
	}

	if err := manager.reload(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if config.remote() {
		manager.wg.Add(1)
		go manager.refreshPeriodically()
	}

	return manager, nil
}

// reload replaces the tables and records the outcome for Statistics.
func (manager *Manager) reload(ctx context.Context) error {
	err := manager.replace(ctx)

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if err != nil {
		manager.lastError = err
		manager.lastErrorAt = time.Now()
	} else {
		manager.lastError = nil
		manager.lastErrorAt = time.Time{}
	}
	return err
}

func (manager *Manager) replace(ctx context.Context) error {
	loaded, err := loadTables(ctx, manager.config, manager.logger)
	if err != nil {
		return err
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	ctx = logging.WithLogger(ctx, manager.logger)
	if err := manager.DB.ReplaceTables(ctx, loaded.sites, loaded.waypoints); err != nil {
		return fmt.Errorf("error storing tables: %w", err)
	}

	manager.lastUpdated = time.Now()
	manager.loadID = uuid.NewString()
	manager.lastSites = len(loaded.sites)
	manager.lastRoutes = len(loaded.waypoints)

	logging.LogOperation(manager.logger, "tables_loaded",
		slog.String("load_id", manager.loadID),
		slog.Int("site_rows", loaded.siteReport.Rows),
		slog.Int("sites_dropped", loaded.siteReport.Dropped),
		slog.Int("route_rows", loaded.routeReport.Rows),
		slog.Int("waypoints_dropped", loaded.routeReport.Dropped),
		slog.Duration("duration", manager.DB.ImportRuntime()))

	return nil
}

// Refresh reloads both tables now. On failure the previous data stays live.
func (manager *Manager) Refresh(ctx context.Context) error {
	return manager.reload(ctx)
}

func (manager *Manager) refreshPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.refreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			err := manager.reload(ctx)
			cancel()

			if err != nil {
				logging.LogError(manager.logger, "failed to refresh tables", err)
			}
		case <-manager.shutdownChan:
			manager.logger.Info("stopping table refresh")
			return
		}
	}
}

// Snapshot reads the current tables. Each call returns fresh slices the
// caller may keep.
func (manager *Manager) Snapshot(ctx context.Context) (Snapshot, error) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	siteRows, err := manager.DB.Queries.ListSites(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("error reading sites: %w", err)
	}
	waypoints, err := manager.DB.Queries.ListWaypoints(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("error reading waypoints: %w", err)
	}

	return Snapshot{Sites: siteRows, Waypoints: waypoints}, nil
}

// FilterOptions lists the distinct values offered for each site filter.
func (manager *Manager) FilterOptions(ctx context.Context) (map[sites.Field][]string, error) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	options := make(map[sites.Field][]string, 3)
	for _, field := range []sites.Field{sites.FieldRegion, sites.FieldProvince, sites.FieldStatus} {
		values, err := manager.DB.Queries.DistinctSiteValues(ctx, field)
		if err != nil {
			return nil, fmt.Errorf("error reading %s values: %w", field, err)
		}
		options[field] = values
	}
	return options, nil
}

// RouteSources lists every route source in first-seen order.
func (manager *Manager) RouteSources(ctx context.Context) ([]string, error) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	return manager.DB.Queries.ListSources(ctx)
}

// Statistics describes the tables currently served.
func (manager *Manager) Statistics() Statistics {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	stats := Statistics{
		LoadID:       manager.loadID,
		SitesSource:  manager.config.SitesSource,
		RoutesSource: manager.config.RoutesSource,
		Sites:        manager.lastSites,
		Waypoints:    manager.lastRoutes,
		LastUpdated:  manager.lastUpdated,
		Remote:       manager.config.remote(),
	}
	if manager.lastError != nil {
		at := manager.lastErrorAt
		stats.LastError = manager.lastError.Error()
		stats.LastErrorAt = &at
		stats.DataShape = dataset.IsDataShapeError(manager.lastError)
	}
	return stats
}

// Shutdown stops the refresher and closes the store. Safe to call twice.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
		logging.SafeCloseWithLogging(manager.DB, manager.logger, "close_site_db")
	})
}
