package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/fieldmap-io/fieldmap/internal/pkg/geo"
)

type GeometryService interface {
	Analyze(raw json.RawMessage) (*geo.Stats, error)
	Simplify(raw json.RawMessage, tolerance float64) (*geojson.Geometry, error)
	Buffer(raw json.RawMessage, meters float64) (*geojson.Geometry, error)
	ToWKT(raw json.RawMessage) (string, error)
	FromWKT(s string) (*geojson.Geometry, error)
}

type geometryService struct{}

func NewGeometryService() GeometryService {
	return &geometryService{}
}

func (s *geometryService) Analyze(raw json.RawMessage) (*geo.Stats, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}
	return geo.Analyze(fc), nil
}

func (s *geometryService) Simplify(raw json.RawMessage, tolerance float64) (*geojson.Geometry, error) {
	if tolerance < 0 {
		return nil, errors.New("tolerance must be non-negative")
	}
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("parse geometry: %w", err)
	}
	return geojson.NewGeometry(geo.Simplify(g.Geometry(), tolerance)), nil
}

// ToWKT renders a GeoJSON geometry as its WKT text form.
func (s *geometryService) ToWKT(raw json.RawMessage) (string, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return "", fmt.Errorf("parse geometry: %w", err)
	}
	return wkt.MarshalString(g.Geometry()), nil
}

// FromWKT parses WKT text into a GeoJSON geometry.
func (s *geometryService) FromWKT(text string) (*geojson.Geometry, error) {
	g, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, fmt.Errorf("parse wkt: %w", err)
	}
	return geojson.NewGeometry(g), nil
}

func (s *geometryService) Buffer(raw json.RawMessage, meters float64) (*geojson.Geometry, error) {
	if meters <= 0 {
		return nil, errors.New("buffer distance must be positive")
	}
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("parse geometry: %w", err)
	}
	return geojson.NewGeometry(geo.Buffer(g.Geometry(), meters)), nil
}
