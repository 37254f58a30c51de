// Package dataset reads the site and route CSV tables.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vnsites/sitemap/internal/route"
	"github.com/vnsites/sitemap/internal/sites"
	"github.com/vnsites/sitemap/internal/utils"
)

// Column names as they appear in the source tables.
const (
	ColRegion     = "Region"
	ColProvince   = "Province"
	ColSiteStatus = "Site Status"
	ColName       = "Name"
	ColLatitude   = "Latitude"
	ColLongitude  = "Longitude"

	ColSourceFile = "Source_File"
	ColRouteName  = "Name"
	ColRouteLat   = "latitude"
	ColRouteLon   = "longitude"
)

var (
	siteColumns  = []string{ColRegion, ColProvince, ColSiteStatus, ColName, ColLatitude, ColLongitude}
	routeColumns = []string{ColSourceFile, ColRouteName, ColRouteLat, ColRouteLon}
)

// Report summarises one table load.
type Report struct {
	Rows    int `json:"rows"`
	Loaded  int `json:"loaded"`
	Dropped int `json:"dropped"`
}

// LoadSites parses the site table. Rows whose coordinates are not finite
// numbers are dropped and counted.
func LoadSites(r io.Reader) ([]sites.Site, Report, error) {
	var out []sites.Site
	report, err := readTable(r, "site", siteColumns, func(rec []string, idx map[string]int) bool {
		lat, lon, ok := coordinates(cell(rec, idx[ColLatitude]), cell(rec, idx[ColLongitude]))
		if !ok {
			return false
		}
		out = append(out, sites.Site{
			Name:     cell(rec, idx[ColName]),
			Region:   cell(rec, idx[ColRegion]),
			Province: cell(rec, idx[ColProvince]),
			Status:   cell(rec, idx[ColSiteStatus]),
			Lat:      lat,
			Lon:      lon,
		})
		return true
	})
	if err != nil {
		return nil, report, err
	}
	return out, report, nil
}

// LoadWaypoints parses the route table in file order.
func LoadWaypoints(r io.Reader) ([]route.Waypoint, Report, error) {
	var out []route.Waypoint
	report, err := readTable(r, "route", routeColumns, func(rec []string, idx map[string]int) bool {
		lat, lon, ok := coordinates(cell(rec, idx[ColRouteLat]), cell(rec, idx[ColRouteLon]))
		if !ok {
			return false
		}
		out = append(out, route.Waypoint{
			SourceID:    cell(rec, idx[ColSourceFile]),
			SegmentName: cell(rec, idx[ColRouteName]),
			Lat:         lat,
			Lon:         lon,
		})
		return true
	})
	if err != nil {
		return nil, report, err
	}
	return out, report, nil
}

func readTable(r io.Reader, table string, required []string, row func([]string, map[string]int) bool) (Report, error) {
	var report Report

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return report, fmt.Errorf("%s table: %w", table, ErrEmptyTable)
	}
	if err != nil {
		return report, fmt.Errorf("reading %s header: %w", table, err)
	}

	idx, err := resolveColumns(table, header, required)
	if err != nil {
		return report, err
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("reading %s row %d: %w", table, report.Rows+1, err)
		}

		report.Rows++
		if row(rec, idx) {
			report.Loaded++
		} else {
			report.Dropped++
		}
	}

	return report, nil
}

func coordinates(latText, lonText string) (float64, float64, bool) {
	lat, ok := number(latText)
	if !ok {
		return 0, 0, false
	}
	lon, ok := number(lonText)
	if !ok {
		return 0, 0, false
	}
	if utils.ValidateCoordinate(lat, lon) != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

func number(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
