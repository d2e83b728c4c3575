package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nerdtracker/tracktiles/internal/cleanup"
	"github.com/nerdtracker/tracktiles/internal/service"
	"github.com/nerdtracker/tracktiles/pkg/response"
)

// CleanupHandler handles hangout collapse requests
type CleanupHandler struct {
	cleanupService *service.CleanupService
}

// NewCleanupHandler creates a new cleanup handler
func NewCleanupHandler(cleanupService *service.CleanupService) *CleanupHandler {
	return &CleanupHandler{cleanupService: cleanupService}
}

// CleanupRequest is the body of POST /api/v1/cleanup
type CleanupRequest struct {
	DryRun       bool    `json:"dryRun"`
	SilenceDistM float64 `json:"silenceDistM"`
	WindowCount  int     `json:"windowCount"`
	MinInRange   int     `json:"minInRange"`
}

// Cleanup handles POST /api/v1/cleanup
func (h *CleanupHandler) Cleanup(c *gin.Context) {
	req := CleanupRequest{DryRun: true}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid cleanup request")
		return
	}

	th := cleanup.DefaultThresholds
	if req.SilenceDistM > 0 {
		th.SilenceDistM = req.SilenceDistM
	}
	if req.WindowCount > 0 {
		th.WindowCount = req.WindowCount
	}
	if req.MinInRange > 0 {
		th.MinInRange = req.MinInRange
	}

	result, err := h.cleanupService.Run(th, req.DryRun)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, result)
}
