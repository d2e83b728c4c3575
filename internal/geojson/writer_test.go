package geojson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdtracker/tracktiles/internal/models"
)

func TestTrackFeature(t *testing.T) {
	f := TrackFeature(models.TrackFeature{
		Group:       "owntracks/user/phone",
		Coordinates: []models.Coordinate{{13.405, 52.52}, {13.41, 52.53}},
		StartTS:     1000,
		EndTS:       2000,
	})

	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "LineString", f.Geometry.Type)
	assert.Equal(t, int64(1000), f.Properties["start_ts"])
	assert.Equal(t, int64(2000), f.Properties["end_ts"])
	assert.Equal(t, "owntracks/user/phone", f.Properties["topic"])
}

func TestFlightFeature(t *testing.T) {
	f := FlightFeature(models.FlightFeature{
		Coordinates: []models.Coordinate{{0, 0}, {3, 9}},
		StartTS:     1000,
		EndTS:       8200,
		DistKm:      1043,
		DurationMin: 120,
		Bearing:     18.4,
	})

	assert.Equal(t, "LineString", f.Geometry.Type)
	assert.Equal(t, 1043.0, f.Properties["dist_km"])
	assert.Equal(t, 120.0, f.Properties["duration_min"])
	assert.Equal(t, 18.4, f.Properties["bearing"])
}

func TestLocationFeatureRoundsCoordinates(t *testing.T) {
	f := LocationFeature(models.Location{Tst: 42, Lat: 52.5200004, Lon: 13.4049996}, 5)

	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, models.Coordinate{13.405, 52.52}, f.Geometry.Coordinates)
	assert.Equal(t, int64(42), f.Properties["tst"])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.geojson")
	features := []Feature{
		TrackFeature(models.TrackFeature{
			Group:       "g",
			Coordinates: []models.Coordinate{{0, 0}, {0, 0.02}},
			StartTS:     0,
			EndTS:       1200,
		}),
	}

	require.NoError(t, WriteFile(path, features))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var collection FeatureCollection
	require.NoError(t, json.Unmarshal(raw, &collection))
	assert.Equal(t, "FeatureCollection", collection.Type)
	require.Len(t, collection.Features, 1)
	assert.Equal(t, "LineString", collection.Features[0].Geometry.Type)
}

func TestWriteFileEmptyCollection(t *testing.T) {
	// tippecanoe rejects "features": null; an empty layer must still be a list
	path := filepath.Join(t.TempDir(), "empty.geojson")
	require.NoError(t, WriteFile(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"features":[]`)
}
