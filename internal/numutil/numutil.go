// Package numutil holds small integer and timing helpers used by numeric kernels.
package numutil

import (
	"math/rand/v2"
	"time"
)

// DivideAndRoundUp returns ceil(a / b) for a >= 0, b > 0.
func DivideAndRoundUp(a, b int) int {
	return (a + b - 1) / b
}

// RoundUp returns the smallest multiple of b that is >= a.
func RoundUp(a, b int) int {
	return DivideAndRoundUp(a, b) * b
}

// GCD returns the greatest common divisor g of the non-negative integers a and
// b, together with Bezout coefficients u, v such that a*u + b*v = g.
func GCD(a, b int) (g, u, v int) {
	// Extended Euclid, iterative.
	oldR, r := a, b
	oldU, u := 1, 0
	oldV, v := 0, 1
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldU, u = u, oldU-q*u
		oldV, v = v, oldV-q*v
	}
	return oldR, oldU, oldV
}

// Randn draws a standard normally distributed value.
func Randn() float64 {
	return rand.NormFloat64()
}

var epoch = time.Now()

// Time returns a monotonic clock reading in microseconds.
func Time() int64 {
	return time.Since(epoch).Microseconds()
}
