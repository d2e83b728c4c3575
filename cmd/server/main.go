package main

import (
	"log"

	"github.com/nerdtracker/tracktiles/internal/api"
	"github.com/nerdtracker/tracktiles/internal/config"
	"github.com/nerdtracker/tracktiles/internal/database"
)

func main() {
	cfg := config.Load()

	if err := database.Init(cfg.DBPath); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	router := api.SetupRouter(cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
