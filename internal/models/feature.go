package models

// Coordinate is a single (lon, lat) pair, GeoJSON axis order.
type Coordinate [2]float64

// Lon returns the longitude component
func (c Coordinate) Lon() float64 { return c[0] }

// Lat returns the latitude component
func (c Coordinate) Lat() float64 { return c[1] }

// Interval is the wall-clock span of an accepted flight. Ground
// segmentation must not bridge a gap that fully contains one.
type Interval struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// TrackFeature is a simplified ground-track polyline for one trip group
type TrackFeature struct {
	Group       string       `json:"group"`
	Coordinates []Coordinate `json:"coordinates"`
	StartTS     int64        `json:"start_ts"`
	EndTS       int64        `json:"end_ts"`
}

// FlightFeature is a simplified polyline for a detected flight
type FlightFeature struct {
	Coordinates []Coordinate `json:"coordinates"`
	StartTS     int64        `json:"start_ts"`
	EndTS       int64        `json:"end_ts"`
	DistKm      float64      `json:"dist_km"`      // rounded to whole km
	DurationMin float64      `json:"duration_min"` // rounded to whole minutes
	Bearing     float64      `json:"bearing"`      // initial bearing, degrees
}
