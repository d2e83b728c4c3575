package pipeline

import "github.com/nerdtracker/tracktiles/internal/spatial"

// Options defines configurable thresholds for the track pipeline
type Options struct {
	OutlierDropKm        float64 // drop points farther than this from both neighbors
	OutlierMaxSpeedKmh   float64 // far points moving at least this fast are kept
	FlightSpeedKmh       float64 // edge speed above this is a flight edge
	FlightMinDistanceKm  float64 // minimum accumulated flight length
	FlightMinDurationMin float64 // minimum flight wall-clock duration
	FlightMaxGapHours    float64 // sparse jumps within this window still count as flights
	TrackMaxGapHours     float64 // split ground tracks on gaps longer than this
	TrackEpsilonKm       float64 // simplification tolerance for ground tracks
	FlightEpsilonKm      float64 // coarser simplification tolerance for flights
	CoordPrecision       int     // decimal places kept when rounding coordinates
}

// DefaultOptions provides default pipeline thresholds
func DefaultOptions() Options {
	return Options{
		OutlierDropKm:        50.0,
		OutlierMaxSpeedKmh:   100.0, // half the flight speed threshold
		FlightSpeedKmh:       200.0,
		FlightMinDistanceKm:  50.0,
		FlightMinDurationMin: 10.0,
		FlightMaxGapHours:    12.0,
		TrackMaxGapHours:     3.0,
		TrackEpsilonKm:       0.1, // 100m
		FlightEpsilonKm:      1.0, // 1km, flights tolerate a coarser line
		CoordPrecision:       spatial.CoordPrecision,
	}
}
