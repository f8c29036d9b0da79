package accel

import "math"

// FullScaleLSBPerG is the raw-to-g divisor for the ±2g range (AFS_SEL = 0).
const FullScaleLSBPerG = 16384.0

// ToPhysical converts one raw axis reading to standard gravities.
// Defined for every int16 value, including math.MinInt16.
func ToPhysical(raw int16, fullScale float64) float64 {
	return float64(raw) / fullScale
}

// Magnitude returns the Euclidean norm of the acceleration vector.
// NaN inputs propagate to the result.
func Magnitude(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
