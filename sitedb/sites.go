package sitedb

import (
	"context"
	"fmt"

	"github.com/vnsites/sitemap/internal/sites"
)

type CreateSiteParams struct {
	Name     string
	Region   string
	Province string
	Status   string
	Lat      float64
	Lon      float64
}

const createSite = `
INSERT INTO sites (name, region, province, status, lat, lon)
VALUES (?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateSite(ctx context.Context, arg CreateSiteParams) error {
	_, err := q.db.ExecContext(ctx, createSite,
		arg.Name, arg.Region, arg.Province, arg.Status, arg.Lat, arg.Lon)
	return err
}

const listSites = `
SELECT name, region, province, status, lat, lon
FROM sites
ORDER BY id
`

// ListSites returns every site in table order.
func (q *Queries) ListSites(ctx context.Context) ([]sites.Site, error) {
	rows, err := q.db.QueryContext(ctx, listSites)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []sites.Site
	for rows.Next() {
		var s sites.Site
		if err := rows.Scan(&s.Name, &s.Region, &s.Province, &s.Status, &s.Lat, &s.Lon); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// siteColumns whitelists the columns DistinctSiteValues may read.
var siteColumns = map[sites.Field]string{
	sites.FieldRegion:   "region",
	sites.FieldProvince: "province",
	sites.FieldStatus:   "status",
}

// DistinctSiteValues lists the non-empty values of field in first-seen order.
func (q *Queries) DistinctSiteValues(ctx context.Context, field sites.Field) ([]string, error) {
	column, ok := siteColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown site field %q", field)
	}

	query := fmt.Sprintf(`
SELECT %[1]s
FROM sites
WHERE %[1]s <> ''
GROUP BY %[1]s
ORDER BY MIN(id)
`, column)

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (q *Queries) CountSites(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sites`).Scan(&count)
	return count, err
}

func (q *Queries) DeleteAllSites(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM sites`)
	return err
}
