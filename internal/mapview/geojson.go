package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/vnsites/sitemap/internal/route"
)

// FeatureCollection exports view as GeoJSON. Sites and waypoints become
// Point features; each route becomes a LineString when it is one continuous
// path and a MultiLineString when it has several disjoint paths.
func FeatureCollection(view *View) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if view == nil {
		return fc
	}

	for _, layer := range view.StatusLayers {
		for _, m := range layer.Markers {
			f := geojson.NewFeature(orb.Point{m.Lon, m.Lat})
			f.Properties["kind"] = "site"
			f.Properties["name"] = m.Label
			f.Properties["status"] = layer.Name
			f.Properties["color"] = layer.Color
			fc.Append(f)
		}
	}

	for _, layer := range view.RouteLayers {
		for _, m := range layer.Markers {
			f := geojson.NewFeature(orb.Point{m.Lon, m.Lat})
			f.Properties["kind"] = "waypoint"
			f.Properties["label"] = m.Label
			f.Properties["source"] = layer.SourceID
			f.Properties["color"] = layer.Color
			fc.Append(f)
		}

		geometry := pathGeometry(layer.Paths)
		if geometry == nil {
			continue
		}
		f := geojson.NewFeature(geometry)
		f.Properties["kind"] = "route"
		f.Properties["source"] = layer.SourceID
		f.Properties["color"] = layer.Color
		f.Properties["policy"] = layer.Policy.String()
		fc.Append(f)
	}

	return fc
}

func lineString(path []route.Vertex) orb.LineString {
	ls := make(orb.LineString, 0, len(path))
	for _, v := range path {
		ls = append(ls, orb.Point{v.Lon, v.Lat})
	}
	return ls
}

func pathGeometry(paths [][]route.Vertex) orb.Geometry {
	switch len(paths) {
	case 0:
		return nil
	case 1:
		return lineString(paths[0])
	default:
		mls := make(orb.MultiLineString, 0, len(paths))
		for _, p := range paths {
			mls = append(mls, lineString(p))
		}
		return mls
	}
}
