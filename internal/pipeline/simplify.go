package pipeline

import (
	"github.com/nerdtracker/tracktiles/internal/models"
	"github.com/nerdtracker/tracktiles/internal/spatial"
)

// SimplifyRDP reduces a polyline with the Ramer-Douglas-Peucker algorithm.
// The output is a subsequence of the input with both endpoints retained,
// and simplifying an already-simplified line is a no-op.
func SimplifyRDP(coords []models.Coordinate, epsilonKm float64) []models.Coordinate {
	if len(coords) < 3 {
		return coords
	}

	start, end := coords[0], coords[len(coords)-1]

	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(coords)-1; i++ {
		d := spatial.PerpendicularDistanceKm(
			coords[i].Lon(), coords[i].Lat(),
			start.Lon(), start.Lat(),
			end.Lon(), end.Lat(),
		)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist > epsilonKm {
		left := SimplifyRDP(coords[:maxIdx+1], epsilonKm)
		right := SimplifyRDP(coords[maxIdx:], epsilonKm)

		// Both halves contain the split point; keep it once
		merged := make([]models.Coordinate, 0, len(left)+len(right)-1)
		merged = append(merged, left[:len(left)-1]...)
		merged = append(merged, right...)
		return merged
	}

	return []models.Coordinate{start, end}
}
