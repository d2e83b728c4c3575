package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdtracker/tracktiles/internal/models"
)

func TestRunSimpleWalk(t *testing.T) {
	// A short straight walk: no flights, one track collapsed to its endpoints
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0, Topic: "owntracks/user/phone"},
		{Tst: 600, Lat: 0.01, Lon: 0, Topic: "owntracks/user/phone"},
		{Tst: 1200, Lat: 0.02, Lon: 0, Topic: "owntracks/user/phone"},
	}

	result := Run(points, DefaultOptions())

	assert.Empty(t, result.Flights)
	require.Len(t, result.Tracks, 1)

	track := result.Tracks[0]
	assert.Equal(t, "owntracks/user/phone", track.Group)
	assert.Equal(t, int64(0), track.StartTS)
	assert.Equal(t, int64(1200), track.EndTS)
	require.Len(t, track.Coordinates, 2)
	assert.Equal(t, models.Coordinate{0, 0}, track.Coordinates[0])
	assert.Equal(t, models.Coordinate{0, 0.02}, track.Coordinates[1])
}

func TestRunSortsInput(t *testing.T) {
	points := []models.Location{
		{Tst: 1200, Lat: 0.02, Lon: 0, Topic: "t"},
		{Tst: 0, Lat: 0, Lon: 0, Topic: "t"},
		{Tst: 600, Lat: 0.01, Lon: 0, Topic: "t"},
	}

	result := Run(points, DefaultOptions())

	require.Len(t, result.Tracks, 1)
	assert.Equal(t, int64(0), result.Tracks[0].StartTS)
	assert.Equal(t, int64(1200), result.Tracks[0].EndTS)

	// The caller's slice is left untouched
	assert.Equal(t, int64(1200), points[0].Tst)
}

func TestRunSplitsTrackAroundFlight(t *testing.T) {
	// Ground fixes, a 1000 km jump at 500 km/h, then ground fixes again.
	// The flight comes out as its own feature and the ground track splits
	// around it even though the time gap alone is under the threshold.
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0, Topic: "t"},
		{Tst: 600, Lat: 0.001, Lon: 0, Topic: "t"},
		{Tst: 1200, Lat: 0.002, Lon: 0, Topic: "t"},
		{Tst: 8400, Lat: 9.0, Lon: 0, Topic: "t"},
		{Tst: 9000, Lat: 9.001, Lon: 0, Topic: "t"},
		{Tst: 9600, Lat: 9.002, Lon: 0, Topic: "t"},
	}

	result := Run(points, DefaultOptions())

	require.Len(t, result.Flights, 1)
	flight := result.Flights[0]
	assert.Equal(t, int64(1200), flight.StartTS)
	assert.Equal(t, int64(8400), flight.EndTS)
	assert.InDelta(t, 1000, flight.DistKm, 1)

	require.Len(t, result.Tracks, 2)
	starts := []int64{result.Tracks[0].StartTS, result.Tracks[1].StartTS}
	assert.ElementsMatch(t, []int64{0, 9000}, starts)
}

func TestRunGroupKeyFallback(t *testing.T) {
	// Groups are staggered in time and near each other in space so the
	// global flight pass sees only slow edges between them
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0, Topic: "owntracks/a"},
		{Tst: 600, Lat: 0.01, Lon: 0, Topic: "owntracks/a"},

		{Tst: 3600, Lat: 0.2, Lon: 0, Tag: "backpack"},
		{Tst: 4200, Lat: 0.21, Lon: 0, Tag: "backpack"},

		{Tst: 7200, Lat: 0.4, Lon: 0},
		{Tst: 7800, Lat: 0.41, Lon: 0},
	}

	result := Run(points, DefaultOptions())

	groups := make(map[string]bool)
	for _, tr := range result.Tracks {
		groups[tr.Group] = true
	}
	assert.Equal(t, map[string]bool{
		"owntracks/a": true,
		"backpack":    true,
		"unknown":     true,
	}, groups)
}

func TestRunDropsOutliersBeforeDetection(t *testing.T) {
	// A slow 80 km spike must not survive into the track output
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0, Topic: "t"},
		{Tst: 57600, Lat: 0.72, Lon: 0, Topic: "t"},
		{Tst: 115200, Lat: 0.001, Lon: 0, Topic: "t"},
	}
	opts := DefaultOptions()
	opts.TrackMaxGapHours = 48

	result := Run(points, opts)

	assert.Empty(t, result.Flights)
	require.Len(t, result.Tracks, 1)
	require.Len(t, result.Tracks[0].Coordinates, 2)
	for _, c := range result.Tracks[0].Coordinates {
		assert.Less(t, c.Lat(), 0.01)
	}
}

func TestRunEmptyInput(t *testing.T) {
	result := Run(nil, DefaultOptions())
	assert.Empty(t, result.Tracks)
	assert.Empty(t, result.Flights)
}
