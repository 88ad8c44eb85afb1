package math

import "math"

// Pi as float32.
const Pi = float32(math.Pi)

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
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

// Sqrt is a float32 square root.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Sin is a float32 sine.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos is a float32 cosine.
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Tan is a float32 tangent.
func Tan(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

// Atan2 is a float32 arc tangent of y/x.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float32) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// WrapAngle normalizes an angle to (-Pi, Pi].
// Non-finite input yields 0.
func WrapAngle(a float32) float32 {
	if !IsFinite(a) {
		return 0
	}
	w := float32(math.Mod(float64(a)+math.Pi, 2*math.Pi))
	if w <= 0 {
		w += 2 * Pi
	}
	return w - Pi
}
