// Package geojson holds the minimal GeoJSON types emitted for tile building.
package geojson

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nerdtracker/tracktiles/internal/models"
	"github.com/nerdtracker/tracktiles/internal/spatial"
)

// Geometry is a GeoJSON geometry. Coordinates is either a single (lon, lat)
// pair for points or a list of pairs for line strings.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// Feature is a GeoJSON feature
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection is a GeoJSON feature collection
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewCollection wraps features in a FeatureCollection
func NewCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// TrackFeature converts a ground-track polyline to a GeoJSON feature
func TrackFeature(t models.TrackFeature) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "LineString",
			Coordinates: t.Coordinates,
		},
		Properties: map[string]interface{}{
			"start_ts": t.StartTS,
			"end_ts":   t.EndTS,
			"topic":    t.Group,
		},
	}
}

// FlightFeature converts a flight polyline to a GeoJSON feature
func FlightFeature(f models.FlightFeature) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "LineString",
			Coordinates: f.Coordinates,
		},
		Properties: map[string]interface{}{
			"start_ts":     f.StartTS,
			"end_ts":       f.EndTS,
			"dist_km":      f.DistKm,
			"duration_min": f.DurationMin,
			"bearing":      f.Bearing,
		},
	}
}

// LocationFeature converts a raw fix to a minimal GeoJSON point feature
func LocationFeature(l models.Location, precision int) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: models.Coordinate{spatial.RoundCoord(l.Lon, precision), spatial.RoundCoord(l.Lat, precision)},
		},
		Properties: map[string]interface{}{
			"tst": l.Tst,
		},
	}
}

// WriteFile writes a feature collection to path as compact JSON
func WriteFile(path string, features []Feature) error {
	payload, err := json.Marshal(NewCollection(features))
	if err != nil {
		return fmt.Errorf("failed to marshal feature collection: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
