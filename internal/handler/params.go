package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nerdtracker/tracktiles/internal/pipeline"
)

type paramError string

func (e paramError) Error() string { return string(e) }

func errInvalidParam(name string) error {
	return paramError(fmt.Sprintf("Invalid %s parameter", name))
}

// optionsFromQuery overlays per-request pipeline thresholds on the
// configured defaults. Unknown or malformed values fall back silently.
func optionsFromQuery(c *gin.Context, base pipeline.Options) pipeline.Options {
	opts := base
	opts.OutlierDropKm = queryFloat(c, "outlierKm", opts.OutlierDropKm)
	opts.OutlierMaxSpeedKmh = queryFloat(c, "outlierSpeedKmh", opts.OutlierMaxSpeedKmh)
	opts.FlightSpeedKmh = queryFloat(c, "flightSpeedKmh", opts.FlightSpeedKmh)
	opts.FlightMinDistanceKm = queryFloat(c, "flightMinKm", opts.FlightMinDistanceKm)
	opts.FlightMinDurationMin = queryFloat(c, "flightMinMin", opts.FlightMinDurationMin)
	opts.FlightMaxGapHours = queryFloat(c, "flightGapHours", opts.FlightMaxGapHours)
	opts.TrackMaxGapHours = queryFloat(c, "gapHours", opts.TrackMaxGapHours)
	opts.TrackEpsilonKm = queryFloat(c, "simplifyKm", opts.TrackEpsilonKm)
	opts.FlightEpsilonKm = queryFloat(c, "flightSimplifyKm", opts.FlightEpsilonKm)
	return opts
}

func queryFloat(c *gin.Context, name string, fallback float64) float64 {
	if v := c.Query(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
