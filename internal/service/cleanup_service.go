package service

import (
	"fmt"
	"log"

	"github.com/nerdtracker/tracktiles/internal/cleanup"
	"github.com/nerdtracker/tracktiles/internal/repository"
)

// CleanupService collapses hangout clusters in the stored locations
type CleanupService struct {
	repo *repository.LocationRepository
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(repo *repository.LocationRepository) *CleanupService {
	return &CleanupService{repo: repo}
}

// CleanupResult reports one collapse run
type CleanupResult struct {
	Processed     int            `json:"processed"`
	HangoutGroups int            `json:"hangout_groups"`
	Kept          int            `json:"kept"`
	Removed       int            `json:"removed"`
	Deleted       int64          `json:"deleted"`
	DryRun        bool           `json:"dry_run"`
	RemovedByDate map[string]int `json:"removed_by_date"`
}

// Run collapses hangouts over all stored fixes. With dryRun set, nothing is
// deleted and the result only reports what would go.
func (s *CleanupService) Run(th cleanup.Thresholds, dryRun bool) (*CleanupResult, error) {
	locations, err := s.repo.ListSince(0)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}

	_, removed, report := cleanup.Collapse(locations, th)

	result := &CleanupResult{
		Processed:     report.Processed,
		HangoutGroups: report.HangoutGroups,
		Kept:          report.Kept,
		Removed:       report.Removed,
		DryRun:        dryRun,
		RemovedByDate: report.RemovedByDate,
	}

	if dryRun {
		log.Printf("[CleanupService] Dry run: %d hangout groups, %d rows would be removed", report.HangoutGroups, report.Removed)
		return result, nil
	}

	ids := make([]int64, len(removed))
	for i, l := range removed {
		ids[i] = l.ID
	}
	deleted, err := s.repo.DeleteByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete hangout rows: %w", err)
	}
	result.Deleted = deleted

	log.Printf("[CleanupService] Removed %d rows in %d hangout groups", deleted, report.HangoutGroups)
	return result, nil
}
