package pipeline

import (
	"math"

	"github.com/nerdtracker/tracktiles/internal/models"
	"github.com/nerdtracker/tracktiles/internal/spatial"
)

// DetectFlights classifies consecutive-point edges as flight or ground and
// accumulates runs of flight edges into candidate flights. Input must be
// sorted by timestamp.
//
// An edge is a flight edge when its speed exceeds FlightSpeedKmh, or when it
// jumps at least FlightMinDistanceKm within FlightMaxGapHours (sparse points
// over a long hop). A candidate run is accepted only when its accumulated
// great-circle length reaches FlightMinDistanceKm and its duration reaches
// FlightMinDurationMin; rejected runs leave their points untouched.
//
// Returns the accepted flight polylines, their forbidden intervals (sorted
// by start), and an exclusion mask aligned with the input slice marking
// points that belong to an accepted flight.
func DetectFlights(points []models.Location, opts Options) ([]models.FlightFeature, []models.Interval, []bool) {
	excluded := make([]bool, len(points))

	var flights []models.FlightFeature
	var intervals []models.Interval

	var run []int // indices into points
	closeRun := func() {
		if len(run) >= 2 {
			if f, ok := buildFlight(points, run, opts); ok {
				flights = append(flights, f)
				intervals = append(intervals, models.Interval{Start: f.StartTS, End: f.EndTS})
				for _, idx := range run {
					excluded[idx] = true
				}
			}
		}
		run = nil
	}

	for i := 1; i < len(points); i++ {
		p1, p2 := points[i-1], points[i]
		if p1.Tst <= 0 || p2.Tst <= 0 || p2.Tst <= p1.Tst {
			// Edge carries no usable time delta; it neither extends nor
			// closes the current run
			continue
		}
		dtHours := float64(p2.Tst-p1.Tst) / 3600.0
		distKm := spatial.HaversineKm(p1.Lat, p1.Lon, p2.Lat, p2.Lon)
		speed := distKm / dtHours

		isFlight := speed > opts.FlightSpeedKmh ||
			(distKm >= opts.FlightMinDistanceKm && dtHours <= opts.FlightMaxGapHours)

		if isFlight {
			if len(run) == 0 {
				run = append(run, i-1)
			}
			run = append(run, i)
		} else {
			closeRun()
		}
	}
	closeRun()

	return flights, intervals, excluded
}

// buildFlight evaluates one accumulated run. ok is false when the run does
// not meet the distance/duration acceptance thresholds.
func buildFlight(points []models.Location, run []int, opts Options) (models.FlightFeature, bool) {
	totalDist := 0.0
	for i := 1; i < len(run); i++ {
		a, b := points[run[i-1]], points[run[i]]
		totalDist += spatial.HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon)
	}

	first, last := points[run[0]], points[run[len(run)-1]]
	durationMin := float64(last.Tst-first.Tst) / 60.0

	if totalDist < opts.FlightMinDistanceKm || durationMin < opts.FlightMinDurationMin {
		return models.FlightFeature{}, false
	}

	coords := make([]models.Coordinate, len(run))
	for i, idx := range run {
		coords[i] = models.Coordinate{
			spatial.RoundCoord(points[idx].Lon, opts.CoordPrecision),
			spatial.RoundCoord(points[idx].Lat, opts.CoordPrecision),
		}
	}
	coords = SimplifyRDP(coords, opts.FlightEpsilonKm)

	return models.FlightFeature{
		Coordinates: coords,
		StartTS:     first.Tst,
		EndTS:       last.Tst,
		DistKm:      math.Round(totalDist),
		DurationMin: math.Round(durationMin),
		Bearing:     spatial.Bearing(first.Lat, first.Lon, last.Lat, last.Lon),
	}, true
}
