package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nerdtracker/tracktiles/internal/pipeline"
	"github.com/nerdtracker/tracktiles/internal/service"
	"github.com/nerdtracker/tracktiles/pkg/response"
)

// ExportHandler handles PMTiles export requests
type ExportHandler struct {
	tileService *service.TileService
	defaults    pipeline.Options
	maxZoom     int
}

// NewExportHandler creates a new export handler
func NewExportHandler(tileService *service.TileService, defaults pipeline.Options, maxZoom int) *ExportHandler {
	return &ExportHandler{
		tileService: tileService,
		defaults:    defaults,
		maxZoom:     maxZoom,
	}
}

// ExportRequest is the body of POST /api/v1/export
type ExportRequest struct {
	Days             int   `json:"days"`  // lookback window, 0 = all time
	Since            int64 `json:"since"` // explicit cutoff, overrides days
	MaxZoom          int   `json:"maxZoom"`
	IncludeLocations bool  `json:"includeLocations"`
	KeepGeoJSON      bool  `json:"keepGeojson"`
}

// Export handles POST /api/v1/export
func (h *ExportHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid export request")
		return
	}

	since := req.Since
	if since == 0 && req.Days > 0 {
		since = time.Now().UTC().Add(-time.Duration(req.Days) * 24 * time.Hour).Unix()
	}
	maxZoom := req.MaxZoom
	if maxZoom <= 0 {
		maxZoom = h.maxZoom
	}

	result, err := h.tileService.Export(service.ExportOptions{
		Since:            since,
		MaxZoom:          maxZoom,
		IncludeLocations: req.IncludeLocations,
		KeepGeoJSON:      req.KeepGeoJSON,
		Pipeline:         optionsFromQuery(c, h.defaults),
	})
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, result)
}
