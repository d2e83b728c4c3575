package spatial

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// 0.1 degree of latitude is ~11.1 km
	dist := HaversineKm(46.0, 7.0, 46.1, 7.0)

	expected := 11.1
	tolerance := 0.5

	if math.Abs(dist-expected) > tolerance {
		t.Errorf("Haversine distance incorrect: got %.2fkm, expected ~%.2fkm", dist, expected)
	}
}

func TestHaversineKmCoincidentPoints(t *testing.T) {
	// The clamp must keep coincident points at exactly zero, not NaN
	dist := HaversineKm(52.52, 13.405, 52.52, 13.405)
	if dist != 0 {
		t.Errorf("Distance between coincident points should be 0, got %v", dist)
	}
}

func TestHaversineKmNonFinite(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"nan lat", math.NaN(), 0, 0, 0},
		{"nan lon", 0, 0, 0, math.NaN()},
		{"inf lat", math.Inf(1), 0, 0, 0},
		{"inf lon", 0, math.Inf(-1), 0, 0},
	}
	for _, tc := range cases {
		if d := HaversineKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2); !math.IsInf(d, 1) {
			t.Errorf("%s: expected +Inf, got %v", tc.name, d)
		}
	}
}

func TestPerpendicularDistanceKm(t *testing.T) {
	// Vertical chord along lon=0, point offset 0.01 degrees of longitude
	dist := PerpendicularDistanceKm(0.01, 0.01, 0, 0, 0, 0.02)

	expected := 0.01 * KmPerDegree // 1.11 km
	if math.Abs(dist-expected) > 0.001 {
		t.Errorf("Perpendicular distance incorrect: got %.4fkm, expected %.4fkm", dist, expected)
	}
}

func TestPerpendicularDistanceKmOnLine(t *testing.T) {
	dist := PerpendicularDistanceKm(0, 0.01, 0, 0, 0, 0.02)
	if dist > 1e-9 {
		t.Errorf("Point on the chord should have ~0 distance, got %v", dist)
	}
}

func TestPerpendicularDistanceKmDegenerateChord(t *testing.T) {
	// Degenerate chord falls back to great-circle distance to the endpoint
	dist := PerpendicularDistanceKm(7.0, 46.1, 7.0, 46.0, 7.0, 46.0)
	want := HaversineKm(46.1, 7.0, 46.0, 7.0)

	if math.Abs(dist-want) > 1e-9 {
		t.Errorf("Degenerate chord: got %v, want %v", dist, want)
	}
}

func TestBearing(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"due north", 0, 0, 1, 0, 0},
		{"due east", 0, 0, 0, 1, 90},
		{"due south", 1, 0, 0, 0, 180},
		{"due west", 0, 1, 0, 0, 270},
	}
	for _, tc := range cases {
		got := Bearing(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
		if math.Abs(got-tc.want) > 0.5 {
			t.Errorf("%s: got %.2f, want %.2f", tc.name, got, tc.want)
		}
	}
}

func TestValidLatLng(t *testing.T) {
	if !ValidLatLng(46.0, 7.0) {
		t.Error("Valid coordinate rejected")
	}
	if ValidLatLng(91.0, 0) {
		t.Error("Out-of-range latitude accepted")
	}
	if ValidLatLng(math.NaN(), 0) {
		t.Error("NaN latitude accepted")
	}
}

func TestRoundCoord(t *testing.T) {
	got := RoundCoord(13.4049999, 5)
	if got != 13.405 {
		t.Errorf("RoundCoord: got %v, want 13.405", got)
	}
	if RoundCoord(-0.000004, 5) != 0 {
		t.Errorf("RoundCoord should round tiny negatives to 0")
	}
}
