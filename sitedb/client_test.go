package sitedb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vnsites/sitemap/internal/appconf"
	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sites"
)

func newTestClient(t *testing.T) *Client {
	client, err := NewClient(NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

var (
	testSites = []sites.Site{
		{Name: "HN-001", Region: "North", Province: "Ha Noi", Status: "On Air", Lat: 21.02, Lon: 105.85},
		{Name: "DN-003", Region: "Central", Province: "Da Nang", Status: "Planned", Lat: 16.05, Lon: 108.2},
		{Name: "HP-002", Region: "North", Province: "Hai Phong", Status: "", Lat: 20.86, Lon: 106.68},
	}
	testWaypoints = []route.Waypoint{
		{SourceID: "north.kml", SegmentName: "R2", Lat: 12, Lon: 102},
		{SourceID: "south.kml", SegmentName: "Leg", Lat: 5, Lon: 105},
		{SourceID: "north.kml", SegmentName: "R1", Lat: 10, Lon: 100},
		{SourceID: "north.kml", SegmentName: "R1", Lat: 11, Lon: 101},
	}
)

func TestNewClientRejectsFileDBInTests(t *testing.T) {
	_, err := NewClient(NewConfig(filepath.Join(t.TempDir(), "sites.db"), appconf.Test, false))
	assert.ErrorIs(t, err, ErrFileDBInTest)
}

func TestNewClientFileDB(t *testing.T) {
	client, err := NewClient(NewConfig(filepath.Join(t.TempDir(), "sites.db"), appconf.Development, false))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Equal(t, 25, client.DB.Stats().MaxOpenConnections)
}

func TestReplaceTablesRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.ReplaceTables(ctx, testSites, testWaypoints))

	gotSites, err := client.Queries.ListSites(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSites, gotSites)

	gotWaypoints, err := client.Queries.ListWaypoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, testWaypoints, gotWaypoints, "table order must survive storage")

	counts, err := client.TableCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"sites": 3, "waypoints": 4}, counts)
}

func TestReplaceTablesReplacesPreviousRows(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.ReplaceTables(ctx, testSites, testWaypoints))
	require.NoError(t, client.ReplaceTables(ctx, testSites[:1], nil))

	gotSites, err := client.Queries.ListSites(ctx)
	require.NoError(t, err)
	assert.Len(t, gotSites, 1)

	count, err := client.Queries.CountWaypoints(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReplaceTablesCancelledContext(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.ReplaceTables(context.Background(), testSites, testWaypoints))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, client.ReplaceTables(ctx, nil, nil))

	count, err := client.Queries.CountSites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count, "failed import must leave the previous tables intact")
}
