package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nerdtracker/tracktiles/internal/geojson"
	"github.com/nerdtracker/tracktiles/internal/models"
	"github.com/nerdtracker/tracktiles/internal/pipeline"
	"github.com/nerdtracker/tracktiles/internal/service"
	"github.com/nerdtracker/tracktiles/pkg/response"
)

// TrackHandler handles HTTP requests for locations and derived polylines
type TrackHandler struct {
	trackService *service.TrackService
	defaults     pipeline.Options
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *service.TrackService, defaults pipeline.Options) *TrackHandler {
	return &TrackHandler{
		trackService: trackService,
		defaults:     defaults,
	}
}

// GetLocations handles GET /api/v1/locations
func (h *TrackHandler) GetLocations(c *gin.Context) {
	var filter models.LocationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.trackService.GetLocations(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, result)
}

// IngestLocations handles POST /api/v1/locations
func (h *TrackHandler) IngestLocations(c *gin.Context) {
	var batch []models.Location
	if err := c.ShouldBindJSON(&batch); err != nil {
		response.BadRequest(c, "Invalid location batch")
		return
	}

	stored, dropped, err := h.trackService.IngestLocations(batch)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"stored":  stored,
		"dropped": dropped,
	})
}

// GetTracks handles GET /api/v1/tracks and returns a GeoJSON
// FeatureCollection of simplified ground tracks
func (h *TrackHandler) GetTracks(c *gin.Context) {
	result, ok := h.buildFeatures(c)
	if !ok {
		return
	}

	feats := make([]geojson.Feature, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		feats = append(feats, geojson.TrackFeature(t))
	}
	c.JSON(200, geojson.NewCollection(feats))
}

// GetFlights handles GET /api/v1/flights and returns a GeoJSON
// FeatureCollection of detected flights
func (h *TrackHandler) GetFlights(c *gin.Context) {
	result, ok := h.buildFeatures(c)
	if !ok {
		return
	}

	feats := make([]geojson.Feature, 0, len(result.Flights))
	for _, f := range result.Flights {
		feats = append(feats, geojson.FlightFeature(f))
	}
	c.JSON(200, geojson.NewCollection(feats))
}

func (h *TrackHandler) buildFeatures(c *gin.Context) (pipeline.Result, bool) {
	since, err := sinceFromQuery(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return pipeline.Result{}, false
	}

	opts := optionsFromQuery(c, h.defaults)
	result, err := h.trackService.BuildFeatures(since, opts)
	if err != nil {
		response.InternalError(c, err.Error())
		return pipeline.Result{}, false
	}
	return result, true
}

// sinceFromQuery resolves the time window: explicit `since` epoch wins,
// then `days` lookback, then all time.
func sinceFromQuery(c *gin.Context) (int64, error) {
	if v := c.Query("since"); v != "" {
		since, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, errInvalidParam("since")
		}
		return since, nil
	}
	if v := c.Query("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return 0, errInvalidParam("days")
		}
		if days == 0 {
			return 0, nil
		}
		return time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour).Unix(), nil
	}
	return 0, nil
}
