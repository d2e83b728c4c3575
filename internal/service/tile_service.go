package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nerdtracker/tracktiles/internal/geojson"
	"github.com/nerdtracker/tracktiles/internal/pipeline"
	"github.com/nerdtracker/tracktiles/internal/repository"
	"github.com/nerdtracker/tracktiles/internal/tiles"
)

// TileService builds PMTiles archives from stored locations
type TileService struct {
	repo          *repository.LocationRepository
	tippecanoeBin string
	outputDir     string
}

// NewTileService creates a new tile service
func NewTileService(repo *repository.LocationRepository, tippecanoeBin, outputDir string) *TileService {
	return &TileService{
		repo:          repo,
		tippecanoeBin: tippecanoeBin,
		outputDir:     outputDir,
	}
}

// ExportOptions controls one PMTiles build
type ExportOptions struct {
	Since            int64 // 0 means all time
	MaxZoom          int
	IncludeLocations bool // raw points layer, significantly increases size
	KeepGeoJSON      bool
	Pipeline         pipeline.Options
}

// ExportResult summarizes a finished build
type ExportResult struct {
	RunID       string `json:"run_id"`
	PMTilesPath string `json:"pmtiles_path"`
	SizeBytes   int64  `json:"size_bytes"`
	Points      int    `json:"points"`
	Tracks      int    `json:"tracks"`
	Flights     int    `json:"flights"`
}

// Export runs the pipeline, writes per-layer GeoJSON and invokes tippecanoe
func (s *TileService) Export(opts ExportOptions) (*ExportResult, error) {
	bin, err := tiles.LookupTippecanoe(s.tippecanoeBin)
	if err != nil {
		return nil, err
	}

	locations, err := s.repo.ListSince(opts.Since)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("no locations in the requested window")
	}

	runID := uuid.NewString()
	log.Printf("[TileService] Export %s: %d locations", runID, len(locations))

	result := pipeline.Run(locations, opts.Pipeline)

	geojsonDir := filepath.Join(s.outputDir, "geojson")
	if err := os.MkdirAll(geojsonDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	baseName := "locations_all"
	if opts.Since > 0 {
		baseName = fmt.Sprintf("locations_since_%d", opts.Since)
	}

	var layers []tiles.Layer
	var intermediates []string

	if opts.IncludeLocations {
		feats := make([]geojson.Feature, 0, len(locations))
		for _, l := range locations {
			feats = append(feats, geojson.LocationFeature(l, opts.Pipeline.CoordPrecision))
		}
		path := filepath.Join(geojsonDir, baseName+"_points.geojson")
		if err := geojson.WriteFile(path, feats); err != nil {
			return nil, err
		}
		layers = append(layers, tiles.Layer{Name: "locations", Path: path})
		intermediates = append(intermediates, path)
	}

	flightFeats := make([]geojson.Feature, 0, len(result.Flights))
	for _, f := range result.Flights {
		flightFeats = append(flightFeats, geojson.FlightFeature(f))
	}
	flightsPath := filepath.Join(geojsonDir, baseName+"_flights.geojson")
	if err := geojson.WriteFile(flightsPath, flightFeats); err != nil {
		return nil, err
	}
	layers = append(layers, tiles.Layer{Name: "flights", Path: flightsPath})
	intermediates = append(intermediates, flightsPath)

	// One layer per trip group so the frontend can toggle trips
	byGroup := make(map[string][]geojson.Feature)
	for _, t := range result.Tracks {
		byGroup[t.Group] = append(byGroup[t.Group], geojson.TrackFeature(t))
	}
	for group, feats := range byGroup {
		path := filepath.Join(geojsonDir, "track_"+safeLayerName(group)+".geojson")
		if err := geojson.WriteFile(path, feats); err != nil {
			return nil, err
		}
		layers = append(layers, tiles.Layer{Name: group, Path: path})
		intermediates = append(intermediates, path)
	}

	pmtilesPath := filepath.Join(s.outputDir, baseName+".pmtiles")
	if err := tiles.BuildPMTiles(bin, pmtilesPath, opts.MaxZoom, layers); err != nil {
		return nil, err
	}

	if !opts.KeepGeoJSON {
		for _, path := range intermediates {
			os.Remove(path)
		}
	}

	info, err := os.Stat(pmtilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat pmtiles output: %w", err)
	}
	log.Printf("[TileService] Export %s done: %s (%.2f MB)", runID, pmtilesPath, float64(info.Size())/(1024*1024))

	return &ExportResult{
		RunID:       runID,
		PMTilesPath: pmtilesPath,
		SizeBytes:   info.Size(),
		Points:      len(locations),
		Tracks:      len(result.Tracks),
		Flights:     len(result.Flights),
	}, nil
}

// safeLayerName keeps only filesystem-safe characters of a group name
func safeLayerName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-' || r == ' ':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "track"
	}
	return b.String()
}
