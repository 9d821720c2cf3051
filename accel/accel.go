// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package accel provides the accelerator devices a compute.Context can use.
//
// Devices:
//   - WebGPU: GPU memory via go-webgpu (Windows)
//   - Mock: in-memory device with a byte limit and simulated resets, for tests
//
// Example:
//
//	ctx := compute.New(compute.Config{Accelerator: accel.OpenWebGPU})
//	defer ctx.Close()
//
//	if _, err := ctx.Accelerator(); err != nil {
//	    log.Printf("falling back to host: %v", err)
//	}
package accel

import (
	"github.com/born-ml/kernelcore/internal/accel"
)

// Device is an acquired accelerator.
type Device = accel.Device

// Opener acquires a Device.
type Opener = accel.Opener

// Mock is an in-memory Device.
type Mock = accel.Mock

// MockStats counts the calls made to a Mock.
type MockStats = accel.MockStats

// Accelerator errors.
var (
	ErrUnavailable = accel.ErrUnavailable
	ErrOutOfMemory = accel.ErrOutOfMemory
	ErrLost        = accel.ErrLost
)

// NewMock creates a mock device with limit bytes of memory, 0 for unlimited.
func NewMock(limit int) *Mock {
	return accel.NewMock(limit)
}

// OpenWebGPU acquires the default WebGPU adapter and device.
// Returns an error wrapping ErrUnavailable when no GPU is usable.
func OpenWebGPU() (Device, error) {
	return accel.OpenWebGPU()
}

// Unavailable is an Opener for sessions without an accelerator.
func Unavailable() (Device, error) {
	return accel.Unavailable()
}
