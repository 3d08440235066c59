package math

import "math"

// Epsilon is the smallest denominator used by guarded divisions.
const Epsilon = 1e-6

// Pi as float32.
const Pi = float32(math.Pi)

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Mix blends a and b like GLSL mix().
func Mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Smoothstep is the GLSL smoothstep: 0 below edge0, 1 above edge1, cubic in between.
func Smoothstep(edge0, edge1, x float32) float32 {
	d := edge1 - edge0
	if d > -Epsilon && d < Epsilon {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/d, 0, 1)
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part of x, always in [0, 1).
func Fract(x float32) float32 {
	return x - Floor(x)
}

// Floor returns the greatest integer value <= x.
func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Sin is float32 math.Sin.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos is float32 math.Cos.
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Sqrt is float32 math.Sqrt.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Atan2 is float32 math.Atan2.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Pow is float32 math.Pow.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// SafeDenom keeps d away from zero, preserving its sign.
func SafeDenom(d float32) float32 {
	if d >= 0 && d < Epsilon {
		return Epsilon
	}
	if d < 0 && d > -Epsilon {
		return -Epsilon
	}
	return d
}

// WrapAngle maps an angle into (-Pi, Pi].
func WrapAngle(a float32) float32 {
	w := float32(math.Mod(float64(a+Pi), 2*math.Pi))
	if w <= 0 {
		w += 2 * Pi
	}
	return w - Pi
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / Pi
}
