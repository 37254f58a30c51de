package sitedb

import (
	"context"

	"github.com/vnsites/sitemap/internal/route"
)

type CreateWaypointParams struct {
	SourceFile string
	Name       string
	Lat        float64
	Lon        float64
}

const createWaypoint = `
INSERT INTO waypoints (source_file, name, lat, lon)
VALUES (?, ?, ?, ?)
`

func (q *Queries) CreateWaypoint(ctx context.Context, arg CreateWaypointParams) error {
	_, err := q.db.ExecContext(ctx, createWaypoint, arg.SourceFile, arg.Name, arg.Lat, arg.Lon)
	return err
}

const listWaypoints = `
SELECT source_file, name, lat, lon
FROM waypoints
ORDER BY id
`

// ListWaypoints returns every waypoint in table order. Segment order inside a
// route depends on this order, so it must never be changed to a sorted read.
func (q *Queries) ListWaypoints(ctx context.Context) ([]route.Waypoint, error) {
	return q.queryWaypoints(ctx, listWaypoints)
}

const listWaypointsBySource = `
SELECT source_file, name, lat, lon
FROM waypoints
WHERE source_file = ?
ORDER BY id
`

func (q *Queries) ListWaypointsBySource(ctx context.Context, sourceFile string) ([]route.Waypoint, error) {
	return q.queryWaypoints(ctx, listWaypointsBySource, sourceFile)
}

func (q *Queries) queryWaypoints(ctx context.Context, query string, args ...interface{}) ([]route.Waypoint, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []route.Waypoint
	for rows.Next() {
		var w route.Waypoint
		if err := rows.Scan(&w.SourceID, &w.SegmentName, &w.Lat, &w.Lon); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listSources = `
SELECT source_file
FROM waypoints
GROUP BY source_file
ORDER BY MIN(id)
`

// ListSources returns each route source once, in first-seen order.
func (q *Queries) ListSources(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listSources)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	sources := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

func (q *Queries) CountWaypoints(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM waypoints`).Scan(&count)
	return count, err
}

func (q *Queries) DeleteAllWaypoints(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM waypoints`)
	return err
}
