package pipeline

import "github.com/nerdtracker/tracktiles/internal/models"

// SegmentTrack partitions one group's fixes into contiguous segments,
// starting a new segment when the time gap between consecutive kept points
// exceeds maxGapHours or when the gap fully contains a forbidden interval
// (a flight happened in between, and drawing a line across it would falsely
// connect two ground locations). Input must be sorted by timestamp and
// forbidden must be sorted by interval start.
//
// Segments with fewer than 2 points are discarded; no line can be drawn.
func SegmentTrack(points []models.Location, maxGapHours float64, forbidden []models.Interval) [][]models.Location {
	var segments [][]models.Location
	var current []models.Location

	for _, pt := range points {
		if pt.Tst <= 0 {
			continue
		}
		if len(current) == 0 {
			current = append(current, pt)
			continue
		}

		prevTst := current[len(current)-1].Tst
		gapHours := float64(pt.Tst-prevTst) / 3600.0

		if gapHours > maxGapHours || bridgesFlight(prevTst, pt.Tst, forbidden) {
			segments = append(segments, current)
			current = []models.Location{pt}
		} else {
			current = append(current, pt)
		}
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}

	kept := segments[:0]
	for _, seg := range segments {
		if len(seg) >= 2 {
			kept = append(kept, seg)
		}
	}
	return kept
}

// bridgesFlight reports whether the gap [t1, t2] fully contains a
// non-degenerate forbidden interval. Intervals are sorted by start, so the
// scan can stop at the first interval beyond t2.
func bridgesFlight(t1, t2 int64, forbidden []models.Interval) bool {
	for _, iv := range forbidden {
		if iv.Start >= t1 && iv.End <= t2 && iv.End > iv.Start {
			return true
		}
		if iv.Start > t2 {
			break
		}
	}
	return false
}
