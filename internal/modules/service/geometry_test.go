package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryService_Analyze(t *testing.T) {
	svc := NewGeometryService()

	fc := json.RawMessage(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"status": "ok"},
			 "geometry": {"type": "Point", "coordinates": [-0.1278, 51.5074]}},
			{"type": "Feature", "properties": {"depth": 2},
			 "geometry": {"type": "LineString", "coordinates": [[-0.13, 51.5], [-0.12, 51.51]]}}
		]
	}`)

	stats, err := svc.Analyze(fc)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FeatureCount)
	assert.Equal(t, 1, stats.GeometryTypes["Point"])
	assert.Equal(t, 1, stats.GeometryTypes["LineString"])
	assert.ElementsMatch(t, []string{"depth", "status"}, stats.PropertyKeys)
	assert.NotNil(t, stats.Length)
	assert.Nil(t, stats.Area)

	_, err = svc.Analyze(json.RawMessage(`{"type": "nope"}`))
	assert.Error(t, err)
}

func TestGeometryService_Simplify(t *testing.T) {
	svc := NewGeometryService()

	line := json.RawMessage(`{"type": "LineString",
		"coordinates": [[0,0], [1,0.0001], [2,0], [3,0.0001], [4,0]]}`)

	out, err := svc.Simplify(line, 0.01)
	require.NoError(t, err)
	assert.Equal(t, "LineString", out.Type)

	_, err = svc.Simplify(line, -1)
	assert.Error(t, err)

	_, err = svc.Simplify(json.RawMessage(`not json`), 0.01)
	assert.Error(t, err)
}

func TestGeometryService_WKT(t *testing.T) {
	svc := NewGeometryService()

	t.Run("geojson to wkt", func(t *testing.T) {
		point := json.RawMessage(`{"type": "Point", "coordinates": [-0.1278, 51.5074]}`)

		text, err := svc.ToWKT(point)
		require.NoError(t, err)
		assert.Equal(t, "POINT(-0.1278 51.5074)", text)

		_, err = svc.ToWKT(json.RawMessage(`not json`))
		assert.Error(t, err)
	})

	t.Run("wkt to geojson", func(t *testing.T) {
		g, err := svc.FromWKT("LINESTRING(0 0,1 1)")
		require.NoError(t, err)
		assert.Equal(t, "LineString", g.Type)

		_, err = svc.FromWKT("TRIANGLE(0 0)")
		assert.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		poly := json.RawMessage(`{"type": "Polygon",
			"coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`)

		text, err := svc.ToWKT(poly)
		require.NoError(t, err)

		back, err := svc.FromWKT(text)
		require.NoError(t, err)
		assert.Equal(t, "Polygon", back.Type)
	})
}

func TestGeometryService_Buffer(t *testing.T) {
	svc := NewGeometryService()

	point := json.RawMessage(`{"type": "Point", "coordinates": [-0.1278, 51.5074]}`)

	out, err := svc.Buffer(point, 50)
	require.NoError(t, err)
	assert.Equal(t, "Polygon", out.Type)

	_, err = svc.Buffer(point, 0)
	assert.Error(t, err)

	_, err = svc.Buffer(json.RawMessage(`not json`), 50)
	assert.Error(t, err)
}
