package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nerdtracker/tracktiles/internal/api"
	"github.com/nerdtracker/tracktiles/internal/cleanup"
	"github.com/nerdtracker/tracktiles/internal/config"
	"github.com/nerdtracker/tracktiles/internal/database"
	"github.com/nerdtracker/tracktiles/internal/repository"
	"github.com/nerdtracker/tracktiles/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "tracktiles",
	Short: "Build map tiles from stored GPS tracks",
	Long:  `Processes stored location fixes into simplified track and flight polylines and packages them as a PMTiles archive for map rendering.`,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the track pipeline and build a PMTiles archive",
	Run:   runExport,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Collapse hangout clusters in the stored locations",
	Run:   runCleanup,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run:   runServe,
}

var (
	days             int
	allTime          bool
	maxZoom          int
	includeLocations bool
	keepGeoJSON      bool
	outputDir        string

	gapHours       float64
	flightGapHours float64
	outlierKm      float64
	simplifyKm     float64

	dryRun       bool
	silenceDistM float64
	windowCount  int
	minInRange   int
)

func init() {
	exportCmd.Flags().IntVar(&days, "days", 7, "lookback window in days")
	exportCmd.Flags().BoolVar(&allTime, "all-time", false, "export all locations regardless of time")
	exportCmd.Flags().IntVar(&maxZoom, "max-zoom", 0, "highest zoom level for tippecanoe (0 = configured default)")
	exportCmd.Flags().BoolVar(&includeLocations, "include-locations", false, "include raw locations layer (significantly increases file size)")
	exportCmd.Flags().BoolVar(&keepGeoJSON, "keep-geojson", false, "keep the intermediate GeoJSON files")
	exportCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write outputs (default from config)")
	exportCmd.Flags().Float64Var(&gapHours, "gap-hours", 0, "split tracks on gaps longer than this many hours")
	exportCmd.Flags().Float64Var(&flightGapHours, "flight-gap-hours", 0, "treat sparse jumps within this many hours as flights")
	exportCmd.Flags().Float64Var(&outlierKm, "outlier-km", 0, "drop points farther than this from both neighbors and slow")
	exportCmd.Flags().Float64Var(&simplifyKm, "simplify-km", 0, "track simplification tolerance in km")

	cleanupCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be removed without deleting")
	cleanupCmd.Flags().Float64Var(&silenceDistM, "silence-dist", 0, "hangout radius in meters")
	cleanupCmd.Flags().IntVar(&windowCount, "window", 0, "how many following fixes to inspect")
	cleanupCmd.Flags().IntVar(&minInRange, "min-range", 0, "minimum in-range fixes to call a hangout")

	rootCmd.AddCommand(exportCmd, cleanupCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func mustInit() (*config.Config, *repository.LocationRepository) {
	cfg := config.Load()
	if err := database.Init(cfg.DBPath); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	return cfg, repository.NewLocationRepository(database.GetDB())
}

func runExport(cmd *cobra.Command, args []string) {
	cfg, repo := mustInit()
	defer database.Close()

	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if maxZoom <= 0 {
		maxZoom = cfg.MaxZoom
	}

	opts := cfg.Pipeline
	if gapHours > 0 {
		opts.TrackMaxGapHours = gapHours
	}
	if flightGapHours > 0 {
		opts.FlightMaxGapHours = flightGapHours
	}
	if outlierKm > 0 {
		opts.OutlierDropKm = outlierKm
	}
	if simplifyKm > 0 {
		opts.TrackEpsilonKm = simplifyKm
	}

	var since int64
	if !allTime && days > 0 {
		since = time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour).Unix()
	}

	tileService := service.NewTileService(repo, cfg.TippecanoeBin, cfg.OutputDir)
	result, err := tileService.Export(service.ExportOptions{
		Since:            since,
		MaxZoom:          maxZoom,
		IncludeLocations: includeLocations,
		KeepGeoJSON:      keepGeoJSON,
		Pipeline:         opts,
	})
	if err != nil {
		log.Fatal("Export failed: ", err)
	}

	fmt.Printf("PMTiles written to %s (%.2f MB)\n", result.PMTilesPath, float64(result.SizeBytes)/(1024*1024))
	fmt.Printf("  %d points -> %d tracks, %d flights\n", result.Points, result.Tracks, result.Flights)
}

func runCleanup(cmd *cobra.Command, args []string) {
	_, repo := mustInit()
	defer database.Close()

	th := cleanup.DefaultThresholds
	if silenceDistM > 0 {
		th.SilenceDistM = silenceDistM
	}
	if windowCount > 0 {
		th.WindowCount = windowCount
	}
	if minInRange > 0 {
		th.MinInRange = minInRange
	}

	cleanupService := service.NewCleanupService(repo)
	result, err := cleanupService.Run(th, dryRun)
	if err != nil {
		log.Fatal("Cleanup failed: ", err)
	}

	fmt.Printf("Processed %d rows, %d hangout groups\n", result.Processed, result.HangoutGroups)
	if dryRun {
		fmt.Printf("Dry run: %d rows would be removed\n", result.Removed)
	} else {
		fmt.Printf("Removed %d rows\n", result.Deleted)
	}
	for date, count := range result.RemovedByDate {
		fmt.Printf("  %s: %d rows\n", date, count)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, _ := mustInit()
	defer database.Close()

	router := api.SetupRouter(cfg)
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
