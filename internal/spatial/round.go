package spatial

import "math"

// CoordPrecision is the default number of decimal degrees kept when rounding
// coordinates for output. 5 decimals is roughly 1 m and saves a lot of space.
const CoordPrecision = 5

// RoundCoord rounds a coordinate to the given number of decimal places
func RoundCoord(val float64, precision int) float64 {
	pow := math.Pow(10, float64(precision))
	return math.Round(val*pow) / pow
}
