package pipeline

import (
	"log"
	"sort"
	"sync"

	"github.com/nerdtracker/tracktiles/internal/models"
	"github.com/nerdtracker/tracktiles/internal/spatial"
)

// Result holds the two feature sets produced by a pipeline run
type Result struct {
	Tracks  []models.TrackFeature
	Flights []models.FlightFeature
}

// Run executes the full pipeline over a set of raw fixes: outlier filtering
// and flight detection once globally, then per-group segmentation and
// simplification of the remaining ground points.
//
// The exclusion mask and forbidden intervals are complete before any group
// work starts; groups then run on independent goroutines over read-only
// snapshots. No ordering is guaranteed between groups' output features.
func Run(points []models.Location, opts Options) Result {
	pts := make([]models.Location, len(points))
	copy(pts, points)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Tst < pts[j].Tst })

	filtered := FilterIsolated(pts, opts.OutlierDropKm, opts.OutlierMaxSpeedKmh)
	if dropped := len(pts) - len(filtered); dropped > 0 {
		log.Printf("[Pipeline] Dropped %d outlier points", dropped)
	}

	flights, intervals, excluded := DetectFlights(filtered, opts)

	groups := make(map[string][]models.Location)
	for i, p := range filtered {
		if excluded[i] {
			continue
		}
		key := p.GroupKey()
		groups[key] = append(groups[key], p)
	}

	log.Printf("[Pipeline] %d points, %d flights, %d groups", len(filtered), len(flights), len(groups))

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		tracks []models.TrackFeature
	)
	for key, groupPts := range groups {
		wg.Add(1)
		go func(key string, groupPts []models.Location) {
			defer wg.Done()

			var feats []models.TrackFeature
			for _, seg := range SegmentTrack(groupPts, opts.TrackMaxGapHours, intervals) {
				coords := SimplifyRDP(roundedCoords(seg, opts.CoordPrecision), opts.TrackEpsilonKm)
				if len(coords) < 2 {
					continue
				}
				feats = append(feats, models.TrackFeature{
					Group:       key,
					Coordinates: coords,
					StartTS:     seg[0].Tst,
					EndTS:       seg[len(seg)-1].Tst,
				})
			}

			mu.Lock()
			tracks = append(tracks, feats...)
			mu.Unlock()
		}(key, groupPts)
	}
	wg.Wait()

	return Result{Tracks: tracks, Flights: flights}
}

// roundedCoords extracts rounded (lon, lat) pairs from a segment
func roundedCoords(points []models.Location, precision int) []models.Coordinate {
	coords := make([]models.Coordinate, len(points))
	for i, p := range points {
		coords[i] = models.Coordinate{
			spatial.RoundCoord(p.Lon, precision),
			spatial.RoundCoord(p.Lat, precision),
		}
	}
	return coords
}
