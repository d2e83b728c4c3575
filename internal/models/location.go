package models

// Location represents a single GPS fix as reported by the tracker client
// (OwnTracks-style payload). Timestamps are Unix seconds.
type Location struct {
	ID        int64   `json:"id" db:"id"`
	Tst       int64   `json:"tst" db:"tst"`
	Lat       float64 `json:"lat" db:"lat"`
	Lon       float64 `json:"lon" db:"lon"`
	Acc       float64 `json:"acc,omitempty" db:"acc"`
	Alt       float64 `json:"alt,omitempty" db:"alt"`
	Vel       float64 `json:"vel,omitempty" db:"vel"`
	Batt      float64 `json:"batt,omitempty" db:"batt"`
	Tid       string  `json:"tid,omitempty" db:"tid"`
	Tag       string  `json:"tag,omitempty" db:"tag"`
	Topic     string  `json:"topic,omitempty" db:"topic"`
	Conn      string  `json:"conn,omitempty" db:"conn"`
	CreatedAt int64   `json:"createdAt,omitempty" db:"created_at"`
}

// GroupKey returns the trip grouping key for this fix: topic, falling back
// to tag, falling back to "unknown".
func (l Location) GroupKey() string {
	if l.Topic != "" {
		return l.Topic
	}
	if l.Tag != "" {
		return l.Tag
	}
	return "unknown"
}

// LocationFilter represents filter parameters for querying locations
type LocationFilter struct {
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`   // Unix timestamp
	Topic     string `form:"topic"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// LocationsResponse represents a paginated response of locations
type LocationsResponse struct {
	Data       []Location `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}
