// Package cleanup implements the hangout collapse heuristic: long stretches
// of fixes reported from one spot (home, office) carry no track information
// and are collapsed down to their anchor point.
package cleanup

import (
	"time"

	"github.com/nerdtracker/tracktiles/internal/models"
	"github.com/nerdtracker/tracktiles/internal/spatial"
)

// Thresholds defines configurable parameters for hangout detection,
// matching the location-inserter settings
type Thresholds struct {
	SilenceDistM float64 // radius around the anchor counted as "same spot"
	WindowCount  int     // how many following fixes to inspect
	MinInRange   int     // minimum in-range fixes to call it a hangout
}

// DefaultThresholds provides default hangout detection thresholds
var DefaultThresholds = Thresholds{
	SilenceDistM: 100.0,
	WindowCount:  10,
	MinInRange:   5,
}

// Report summarizes one collapse run
type Report struct {
	Processed     int
	HangoutGroups int
	Kept          int
	Removed       int
	RemovedByDate map[string]int
}

// Collapse walks the fixes with a sliding window: for each anchor it counts
// the following WindowCount fixes within SilenceDistM; when at least
// MinInRange are in range, the anchor is kept and everything through the
// last in-range fix is removed, then scanning resumes after the hangout.
// Input must be sorted by timestamp.
func Collapse(points []models.Location, th Thresholds) (kept, removed []models.Location, report Report) {
	report.RemovedByDate = make(map[string]int)

	i := 0
	for i < len(points) {
		anchor := points[i]
		report.Processed++

		window := th.WindowCount
		if rest := len(points) - i - 1; rest < window {
			window = rest
		}
		if window < th.MinInRange-1 {
			// Not enough fixes left to form a hangout
			kept = append(kept, anchor)
			i++
			continue
		}

		inRange := 0
		lastInRange := i
		for j := 1; j <= window; j++ {
			next := points[i+j]
			d := spatial.HaversineKm(anchor.Lat, anchor.Lon, next.Lat, next.Lon) * 1000.0
			if d <= th.SilenceDistM {
				inRange++
				lastInRange = i + j
			}
		}

		if inRange >= th.MinInRange {
			report.HangoutGroups++
			kept = append(kept, anchor)
			for j := i + 1; j <= lastInRange; j++ {
				removed = append(removed, points[j])
				day := time.Unix(points[j].Tst, 0).UTC().Format("2006-01-02")
				report.RemovedByDate[day]++
			}
			i = lastInRange + 1
		} else {
			kept = append(kept, anchor)
			i++
		}
	}

	report.Kept = len(kept)
	report.Removed = len(removed)
	return kept, removed, report
}
