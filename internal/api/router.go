package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nerdtracker/tracktiles/internal/config"
	"github.com/nerdtracker/tracktiles/internal/database"
	"github.com/nerdtracker/tracktiles/internal/handler"
	"github.com/nerdtracker/tracktiles/internal/middleware"
	"github.com/nerdtracker/tracktiles/internal/repository"
	"github.com/nerdtracker/tracktiles/internal/service"
)

// SetupRouter wires repositories, services and handlers into a gin engine
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Track tiles API is running",
		})
	})

	locationRepo := repository.NewLocationRepository(database.GetDB())
	trackService := service.NewTrackService(locationRepo)
	tileService := service.NewTileService(locationRepo, cfg.TippecanoeBin, cfg.OutputDir)
	cleanupService := service.NewCleanupService(locationRepo)

	trackHandler := handler.NewTrackHandler(trackService, cfg.Pipeline)
	exportHandler := handler.NewExportHandler(tileService, cfg.Pipeline, cfg.MaxZoom)
	cleanupHandler := handler.NewCleanupHandler(cleanupService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		api.GET("/locations", trackHandler.GetLocations)
		api.GET("/tracks", trackHandler.GetTracks)
		api.GET("/flights", trackHandler.GetFlights)

		// Mutating endpoints require a bearer token
		authed := api.Group("")
		authed.Use(middleware.Auth(cfg.JWTSecret))
		{
			authed.POST("/locations", trackHandler.IngestLocations)
			authed.POST("/export", exportHandler.Export)
			authed.POST("/cleanup", cleanupHandler.Cleanup)
		}
	}

	return r
}
