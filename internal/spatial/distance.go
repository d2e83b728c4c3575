package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusKm = 6371.0 // Earth's mean radius in kilometers

	// KmPerDegree approximates one degree of arc at the equator. Used by the
	// planar perpendicular distance, which trades accuracy for speed and is
	// only valid for regionally local segments with tolerances of a few km.
	KmPerDegree = 111.0
)

// HaversineKm calculates the great-circle distance between two points in
// kilometers using the Haversine formula.
//
// Non-finite inputs are treated as infinitely far apart: a broken fix must
// never be classified as nearby, bridged, or merged.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	if !finite(lat1) || !finite(lon1) || !finite(lat2) || !finite(lon2) {
		return math.Inf(1)
	}

	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Clamp 1-a into [0, 1]: floating-point overshoot for coincident or
	// antipodal points would otherwise take Sqrt out of its domain.
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(math.Min(1, math.Max(0, 1-a))))
	return EarthRadiusKm * c
}

// PerpendicularDistanceKm approximates the perpendicular distance in km from
// a point to the line through (lon1, lat1)-(lon2, lat2), treating lon/lat as
// planar coordinates and scaling degrees by KmPerDegree.
func PerpendicularDistanceKm(lon, lat, lon1, lat1, lon2, lat2 float64) float64 {
	// Degenerate chord: distance to the single endpoint
	if lon1 == lon2 && lat1 == lat2 {
		return HaversineKm(lat, lon, lat1, lon1)
	}

	num := math.Abs((lat2-lat1)*lon - (lon2-lon1)*lat + lon2*lat1 - lat2*lon1)
	den := math.Sqrt((lat2-lat1)*(lat2-lat1) + (lon2-lon1)*(lon2-lon1))
	if den == 0 {
		return 0
	}
	return num / den * KmPerDegree
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	phi1 := p1.Lat.Radians()
	phi2 := p2.Lat.Radians()
	lonDiff := p2.Lng.Radians() - p1.Lng.Radians()

	y := math.Sin(lonDiff) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// ValidLatLng reports whether the pair is a finite, in-range coordinate
func ValidLatLng(lat, lon float64) bool {
	if !finite(lat) || !finite(lon) {
		return false
	}
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
