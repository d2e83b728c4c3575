package pipeline

import (
	"math"

	"github.com/nerdtracker/tracktiles/internal/models"
	"github.com/nerdtracker/tracktiles/internal/spatial"
)

// FilterIsolated removes outlier fixes that are far from both neighbors and
// slow (likely GPS spikes). Input must be sorted by timestamp.
//
// This is a single, non-iterative pass: every interior point is judged
// against its original immediate neighbors, so dropping a point never causes
// its former neighbors to be re-evaluated against each other.
func FilterIsolated(points []models.Location, dropKm, maxKeepSpeedKmh float64) []models.Location {
	if dropKm <= 0 || len(points) < 3 {
		return points
	}

	kept := make([]models.Location, 0, len(points))
	kept = append(kept, points[0])

	for i := 1; i < len(points)-1; i++ {
		prev, cur, next := points[i-1], points[i], points[i+1]

		prevDist := spatial.HaversineKm(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		nextDist := spatial.HaversineKm(cur.Lat, cur.Lon, next.Lat, next.Lon)

		prevSpeed := edgeSpeedKmh(prev, cur, prevDist)
		nextSpeed := edgeSpeedKmh(cur, next, nextDist)

		if prevDist > dropKm && nextDist > dropKm && math.Max(prevSpeed, nextSpeed) < maxKeepSpeedKmh {
			// Isolated and slow: drop from line building
			continue
		}
		kept = append(kept, cur)
	}

	kept = append(kept, points[len(points)-1])
	return kept
}

// edgeSpeedKmh returns the speed between two fixes, or 0 when either
// timestamp is missing or the time delta is non-positive.
func edgeSpeedKmh(a, b models.Location, distKm float64) float64 {
	if a.Tst <= 0 || b.Tst <= 0 {
		return 0
	}
	dtHours := float64(b.Tst-a.Tst) / 3600.0
	if dtHours <= 0 {
		return 0
	}
	return distKm / dtHours
}
