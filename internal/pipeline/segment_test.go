package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdtracker/tracktiles/internal/models"
)

func TestSegmentTrackSplitsOnGap(t *testing.T) {
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0},
		{Tst: 3600, Lat: 0.01, Lon: 0},
		{Tst: 18000, Lat: 0.02, Lon: 0}, // 4 h after the previous fix
		{Tst: 18600, Lat: 0.03, Lon: 0},
	}

	segments := SegmentTrack(points, 3.0, nil)

	require.Len(t, segments, 2)
	assert.Equal(t, points[:2], segments[0])
	assert.Equal(t, points[2:], segments[1])
}

func TestSegmentTrackDiscardsSingletons(t *testing.T) {
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0},
		{Tst: 3600, Lat: 0.01, Lon: 0},
		{Tst: 18000, Lat: 0.02, Lon: 0}, // stranded alone after the gap
	}

	segments := SegmentTrack(points, 3.0, nil)

	require.Len(t, segments, 1)
	assert.Len(t, segments[0], 2)
}

func TestSegmentTrackSplitsAcrossFlight(t *testing.T) {
	// The gap is well under the time threshold, but a flight interval sits
	// fully inside it, so connecting the segments would draw a false line
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0},
		{Tst: 500, Lat: 0.001, Lon: 0},
		{Tst: 1300, Lat: 9.0, Lon: 0},
		{Tst: 1500, Lat: 9.001, Lon: 0},
	}
	forbidden := []models.Interval{{Start: 600, End: 1200}}

	segments := SegmentTrack(points, 3.0, forbidden)

	require.Len(t, segments, 2)
	assert.Equal(t, points[:2], segments[0])
	assert.Equal(t, points[2:], segments[1])
}

func TestSegmentTrackIgnoresDegenerateInterval(t *testing.T) {
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0},
		{Tst: 500, Lat: 0.001, Lon: 0},
		{Tst: 1300, Lat: 0.002, Lon: 0},
	}
	forbidden := []models.Interval{{Start: 600, End: 600}}

	segments := SegmentTrack(points, 3.0, forbidden)

	require.Len(t, segments, 1)
	assert.Len(t, segments[0], 3)
}

func TestSegmentTrackIgnoresPartiallyOverlappingInterval(t *testing.T) {
	// Interval starts before the gap: the flight did not happen entirely
	// between these two fixes, so no split
	points := []models.Location{
		{Tst: 500, Lat: 0, Lon: 0},
		{Tst: 1300, Lat: 0.001, Lon: 0},
	}
	forbidden := []models.Interval{{Start: 400, End: 700}}

	segments := SegmentTrack(points, 3.0, forbidden)

	require.Len(t, segments, 1)
	assert.Len(t, segments[0], 2)
}

func TestSegmentTrackSkipsZeroTimestamps(t *testing.T) {
	points := []models.Location{
		{Tst: 0, Lat: 50, Lon: 50}, // no timestamp, not usable
		{Tst: 100, Lat: 0, Lon: 0},
		{Tst: 200, Lat: 0.001, Lon: 0},
	}

	segments := SegmentTrack(points, 3.0, nil)

	require.Len(t, segments, 1)
	assert.Equal(t, points[1:], segments[0])
}

func TestSegmentTrackPartition(t *testing.T) {
	// Every fix with a usable timestamp lands in exactly one segment, in order
	points := []models.Location{
		{Tst: 0, Lat: 0, Lon: 0},
		{Tst: 600, Lat: 0.001, Lon: 0},
		{Tst: 1200, Lat: 0.002, Lon: 0},
		{Tst: 20000, Lat: 0.1, Lon: 0},
		{Tst: 20600, Lat: 0.101, Lon: 0},
		{Tst: 40000, Lat: 0.2, Lon: 0},
		{Tst: 40600, Lat: 0.201, Lon: 0},
	}

	segments := SegmentTrack(points, 3.0, nil)

	var flat []models.Location
	for _, seg := range segments {
		require.GreaterOrEqual(t, len(seg), 2)
		flat = append(flat, seg...)
	}
	assert.Equal(t, points, flat)
}
