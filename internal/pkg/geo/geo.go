// Package geo implements the geometry helpers behind the analysis endpoints:
// GeoJSON statistics, simplification, and approximate buffering. All metric
// math happens in Web Mercator, which is good enough for survey-scale data
// away from the poles.
package geo

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/orb/simplify"
)

// Stats summarizes a GeoJSON feature collection.
type Stats struct {
	FeatureCount  int            `json:"feature_count"`
	GeometryTypes map[string]int `json:"geometry_types"`
	PropertyKeys  []string       `json:"properties"`
	// Bounds is [minLon, minLat, maxLon, maxLat] in WGS84.
	Bounds []float64 `json:"bounds,omitempty"`

	Area   *Distribution `json:"area_m2,omitempty"`
	Length *Distribution `json:"length_m,omitempty"`
}

// Distribution holds aggregate metric values across features.
type Distribution struct {
	Total float64 `json:"total"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (d *Distribution) add(v float64) {
	if d.Total == 0 && d.Mean == 0 && d.Min == 0 && d.Max == 0 {
		d.Min = v
		d.Max = v
	} else {
		d.Min = math.Min(d.Min, v)
		d.Max = math.Max(d.Max, v)
	}
	d.Total += v
}

func (d *Distribution) finish(n int) {
	if n > 0 {
		d.Mean = d.Total / float64(n)
	}
}

// Analyze computes feature counts, geometry type histogram, the union of
// property keys, overall bounds, and area/length statistics for a feature
// collection.
func Analyze(fc *geojson.FeatureCollection) *Stats {
	stats := &Stats{
		GeometryTypes: map[string]int{},
		PropertyKeys:  []string{},
	}

	keys := map[string]struct{}{}
	var bound orb.Bound
	first := true
	areas, lengths := 0, 0
	area := &Distribution{}
	length := &Distribution{}

	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		stats.FeatureCount++
		stats.GeometryTypes[f.Geometry.GeoJSONType()]++
		for k := range f.Properties {
			keys[k] = struct{}{}
		}

		b := f.Geometry.Bound()
		if first {
			bound = b
			first = false
		} else {
			bound = bound.Union(b)
		}

		mercator := project.Geometry(orb.Clone(f.Geometry), project.WGS84.ToMercator)
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			area.add(planar.Area(mercator))
			areas++
		case orb.LineString, orb.MultiLineString:
			length.add(planar.Length(mercator))
			lengths++
		}
	}

	for k := range keys {
		stats.PropertyKeys = append(stats.PropertyKeys, k)
	}
	sort.Strings(stats.PropertyKeys)

	if !first {
		stats.Bounds = []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]}
	}
	if areas > 0 {
		area.finish(areas)
		stats.Area = area
	}
	if lengths > 0 {
		length.finish(lengths)
		stats.Length = length
	}
	return stats
}

// Simplify reduces geometry detail with Douglas-Peucker at the given
// tolerance (in degrees, matching the input coordinate space).
func Simplify(g orb.Geometry, tolerance float64) orb.Geometry {
	return simplify.DouglasPeucker(tolerance).Simplify(orb.Clone(g))
}

// circleSegments controls how round buffered points come out.
const circleSegments = 32

// Buffer returns a polygon covering g expanded by the given distance in
// meters. Points buffer to a circle; everything else buffers its bounding
// box. Distances are applied in Web Mercator, so they stretch toward high
// latitudes the same way the map view does.
func Buffer(g orb.Geometry, meters float64) orb.Polygon {
	m := project.Geometry(orb.Clone(g), project.WGS84.ToMercator)

	var buffered orb.Polygon
	if p, ok := m.(orb.Point); ok {
		ring := make(orb.Ring, 0, circleSegments+1)
		for i := 0; i <= circleSegments; i++ {
			angle := 2 * math.Pi * float64(i) / circleSegments
			ring = append(ring, orb.Point{
				p[0] + meters*math.Cos(angle),
				p[1] + meters*math.Sin(angle),
			})
		}
		buffered = orb.Polygon{ring}
	} else {
		b := m.Bound()
		b.Min[0] -= meters
		b.Min[1] -= meters
		b.Max[0] += meters
		b.Max[1] += meters
		buffered = b.ToPolygon()
	}

	return project.Polygon(buffered, project.Mercator.ToWGS84)
}
