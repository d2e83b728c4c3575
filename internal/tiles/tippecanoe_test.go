package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	layers := []Layer{
		{Name: "flights", Path: "/tmp/flights.geojson"},
		{Name: "track_phone", Path: "/tmp/track_phone.geojson"},
	}

	args := BuildArgs("/tmp/out.pmtiles", 11, layers)

	require.GreaterOrEqual(t, len(args), 2)
	assert.Equal(t, []string{"-o", "/tmp/out.pmtiles"}, args[:2])

	assert.Contains(t, args, "--force")
	assert.Contains(t, args, "--minimum-zoom=0")
	assert.Contains(t, args, "--maximum-zoom=11")
	assert.Contains(t, args, "--drop-densest-as-needed")
	assert.Contains(t, args, "--no-tile-compression")

	assert.Contains(t, args, "--include=start_ts")
	assert.Contains(t, args, "--include=end_ts")
	assert.Contains(t, args, "--include=dist_km")
	assert.Contains(t, args, "--include=duration_min")

	assert.Contains(t, args, "-L")
	assert.Contains(t, args, "flights:/tmp/flights.geojson")
	assert.Contains(t, args, "track_phone:/tmp/track_phone.geojson")
}

func TestLookupTippecanoeMissing(t *testing.T) {
	_, err := LookupTippecanoe("definitely-not-a-real-binary-name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
