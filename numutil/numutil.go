// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package numutil provides integer, random and timing helpers for numeric kernels.
//
// Example:
//
//	blocks := numutil.DivideAndRoundUp(n, threadsPerBlock)
//	start := numutil.Time()
//	launch(blocks)
//	log.Printf("kernel took %dµs", numutil.Time()-start)
package numutil

import "github.com/born-ml/kernelcore/internal/numutil"

// DivideAndRoundUp returns ceil(a / b) for a >= 0, b > 0.
func DivideAndRoundUp(a, b int) int {
	return numutil.DivideAndRoundUp(a, b)
}

// RoundUp returns the smallest multiple of b that is >= a.
func RoundUp(a, b int) int {
	return numutil.RoundUp(a, b)
}

// GCD returns g = gcd(a, b) and u, v with a*u + b*v = g.
func GCD(a, b int) (g, u, v int) {
	return numutil.GCD(a, b)
}

// Randn draws a standard normally distributed value.
func Randn() float64 {
	return numutil.Randn()
}

// Time returns a monotonic clock reading in microseconds.
func Time() int64 {
	return numutil.Time()
}
