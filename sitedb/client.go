package sitedb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/logging"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sites"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var ddl string

const memoryPath = ":memory:"

// ErrFileDBInTest guards against tests writing database files.
var ErrFileDBInTest = errors.New("test environment must use an in-memory database")

// Client is the main entry point for the site store.
type Client struct {
	config        Config
	DB            *sql.DB
	Queries       *Queries
	importRuntime time.Duration
}

// NewClient opens the database and applies the schema.
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:  config,
		DB:      db,
		Queries: New(db),
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// ImportRuntime is how long the last ReplaceTables call took.
func (c *Client) ImportRuntime() time.Duration {
	return c.importRuntime
}

func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != memoryPath {
		return nil, fmt.Errorf("%w: got %q", ErrFileDBInTest, config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if config.DBPath == memoryPath {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := performDatabaseMigration(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return db, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(ddl, "-- migrate") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmed); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmed, err)
		}
	}
	return nil
}

// ReplaceTables swaps the stored site and waypoint tables for the given rows
// in one transaction. Readers never observe a half-imported state.
func (c *Client) ReplaceTables(ctx context.Context, siteRows []sites.Site, waypoints []route.Waypoint) error {
	logger := logging.FromContext(ctx)
	startTime := time.Now()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "replace_tables")

	qtx := c.Queries.WithTx(tx)
	if err := qtx.DeleteAllSites(ctx); err != nil {
		return fmt.Errorf("error clearing sites: %w", err)
	}
	if err := qtx.DeleteAllWaypoints(ctx); err != nil {
		return fmt.Errorf("error clearing waypoints: %w", err)
	}

	for _, s := range siteRows {
		err := qtx.CreateSite(ctx, CreateSiteParams{
			Name:     s.Name,
			Region:   s.Region,
			Province: s.Province,
			Status:   s.Status,
			Lat:      s.Lat,
			Lon:      s.Lon,
		})
		if err != nil {
			return fmt.Errorf("error inserting site %q: %w", s.Name, err)
		}
	}

	for _, w := range waypoints {
		err := qtx.CreateWaypoint(ctx, CreateWaypointParams{
			SourceFile: w.SourceID,
			Name:       w.SegmentName,
			Lat:        w.Lat,
			Lon:        w.Lon,
		})
		if err != nil {
			return fmt.Errorf("error inserting waypoint of %q: %w", w.SourceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	c.importRuntime = time.Since(startTime)
	if c.config.verbose {
		logging.LogOperation(logger, "tables_replaced",
			slog.Int("sites", len(siteRows)),
			slog.Int("waypoints", len(waypoints)),
			slog.Duration("duration", c.importRuntime),
			slog.String("component", "sitedb"))
	}

	return nil
}

// TableCounts returns the row count of every stored table.
func (c *Client) TableCounts(ctx context.Context) (map[string]int, error) {
	siteCount, err := c.Queries.CountSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting sites: %w", err)
	}
	waypointCount, err := c.Queries.CountWaypoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting waypoints: %w", err)
	}

	return map[string]int{
		"sites":     siteCount,
		"waypoints": waypointCount,
	}, nil
}
