package service

import (
	"fmt"

	"github.com/nerdtracker/tracktiles/internal/models"
	"github.com/nerdtracker/tracktiles/internal/pipeline"
	"github.com/nerdtracker/tracktiles/internal/repository"
	"github.com/nerdtracker/tracktiles/internal/spatial"
)

// TrackService handles business logic for locations and derived polylines
type TrackService struct {
	repo *repository.LocationRepository
}

// NewTrackService creates a new track service
func NewTrackService(repo *repository.LocationRepository) *TrackService {
	return &TrackService{repo: repo}
}

// GetLocations retrieves stored fixes with filtering and pagination
func (s *TrackService) GetLocations(filter models.LocationFilter) (*models.LocationsResponse, error) {
	locations, total, err := s.repo.GetLocations(filter)
	if err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return &models.LocationsResponse{
		Data:       locations,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// IngestLocations validates and stores a batch of fixes. Fixes with missing
// or out-of-range coordinates or timestamps are dropped, not rejected; the
// pipeline never sees them. Returns how many were stored and dropped.
func (s *TrackService) IngestLocations(locations []models.Location) (stored, dropped int, err error) {
	valid := make([]models.Location, 0, len(locations))
	for _, l := range locations {
		if l.Tst <= 0 || !spatial.ValidLatLng(l.Lat, l.Lon) {
			dropped++
			continue
		}
		valid = append(valid, l)
	}

	if err := s.repo.InsertBatch(valid); err != nil {
		return 0, dropped, fmt.Errorf("failed to store locations: %w", err)
	}
	return len(valid), dropped, nil
}

// BuildFeatures runs the track pipeline over all fixes since the cutoff
func (s *TrackService) BuildFeatures(since int64, opts pipeline.Options) (pipeline.Result, error) {
	locations, err := s.repo.ListSince(since)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("failed to load locations: %w", err)
	}
	return pipeline.Run(locations, opts), nil
}
