package sitedb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vnsites/sitemap/internal/sites"
)

func TestDistinctSiteValues(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.ReplaceTables(ctx, testSites, nil))

	regions, err := client.Queries.DistinctSiteValues(ctx, sites.FieldRegion)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "Central"}, regions)

	statuses, err := client.Queries.DistinctSiteValues(ctx, sites.FieldStatus)
	require.NoError(t, err)
	assert.Equal(t, []string{"On Air", "Planned"}, statuses)

	_, err = client.Queries.DistinctSiteValues(ctx, sites.Field("name; DROP TABLE sites"))
	assert.Error(t, err)
}

func TestListSourcesAndBySource(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.ReplaceTables(ctx, nil, testWaypoints))

	sources, err := client.Queries.ListSources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"north.kml", "south.kml"}, sources)

	north, err := client.Queries.ListWaypointsBySource(ctx, "north.kml")
	require.NoError(t, err)
	require.Len(t, north, 3)
	assert.Equal(t, "R2", north[0].SegmentName)

	none, err := client.Queries.ListWaypointsBySource(ctx, "missing.kml")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEmptyStore(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	s, err := client.Queries.ListSites(ctx)
	require.NoError(t, err)
	assert.Empty(t, s)

	sources, err := client.Queries.ListSources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, sources)
}
