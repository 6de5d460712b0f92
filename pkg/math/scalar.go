package math

import "math"

// Pi and TwoPi as float32.
const (
	Pi    = float32(math.Pi)
	TwoPi = float32(2 * math.Pi)
)

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * Pi / 180
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp blends a to b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Fract returns the fractional part of v, always in [0, 1).
func Fract(v float32) float32 {
	f := v - float32(math.Floor(float64(v)))
	if f >= 1 {
		return 0
	}
	return f
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
