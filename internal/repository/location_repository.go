package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/nerdtracker/tracktiles/internal/models"
)

// LocationRepository handles database operations for raw location fixes
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = "id, tst, lat, lon, acc, alt, vel, batt, tid, tag, topic, conn, created_at"

// ListSince retrieves all fixes with tst >= since, ordered by timestamp
// ascending. Pass since <= 0 for all time.
func (r *LocationRepository) ListSince(since int64) ([]models.Location, error) {
	query := "SELECT " + locationColumns + " FROM locations"
	var args []interface{}
	if since > 0 {
		query += " WHERE tst >= ?"
		args = append(args, since)
	}
	query += " ORDER BY tst ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	return scanLocations(rows)
}

// GetLocations retrieves fixes with filtering and pagination
func (r *LocationRepository) GetLocations(filter models.LocationFilter) ([]models.Location, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.StartTime > 0 {
		conditions = append(conditions, "tst >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "tst <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.Topic != "" {
		conditions = append(conditions, "topic = ?")
		args = append(args, filter.Topic)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM locations"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := "SELECT " + locationColumns + " FROM locations" + where + " ORDER BY tst DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations, err := scanLocations(rows)
	if err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

// InsertBatch inserts a batch of fixes in one transaction
func (r *LocationRepository) InsertBatch(locations []models.Location) error {
	if len(locations) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO locations (tst, lat, lon, acc, alt, vel, batt, tid, tag, topic, conn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range locations {
		if _, err := stmt.Exec(l.Tst, l.Lat, l.Lon, l.Acc, l.Alt, l.Vel, l.Batt, l.Tid, l.Tag, l.Topic, l.Conn); err != nil {
			return fmt.Errorf("failed to insert location: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit insert: %w", err)
	}
	return nil
}

// DeleteByIDs removes fixes by primary key, returning the number deleted
func (r *LocationRepository) DeleteByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	// SQLite caps bound parameters; delete in chunks
	const chunkSize = 500
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		args := make([]interface{}, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		res, err := r.db.Exec("DELETE FROM locations WHERE id IN ("+placeholders+")", args...)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete locations: %w", err)
		}
		n, _ := res.RowsAffected()
		deleted += n
	}
	return deleted, nil
}

func scanLocations(rows *sql.Rows) ([]models.Location, error) {
	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(
			&l.ID, &l.Tst, &l.Lat, &l.Lon, &l.Acc, &l.Alt, &l.Vel, &l.Batt,
			&l.Tid, &l.Tag, &l.Topic, &l.Conn, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}
	return locations, nil
}
