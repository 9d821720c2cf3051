// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package compute provides the session Context used by numeric kernels.
//
// A Context hands out reusable scratch memory (workspace) and constant
// all-ones vectors for the host and the accelerator, acquires the
// accelerator lazily, and remembers the last error of the session.
//
// Example:
//
//	ctx := compute.New(compute.DefaultConfig())
//	defer ctx.Close()
//
//	ws, err := ctx.Workspace(tensor.Host, 1<<20)
//	if err != nil {
//	    return ctx.PassError(compute.CodeOf(err), "im2col")
//	}
package compute

import (
	"github.com/born-ml/kernelcore/internal/compute"
	"github.com/born-ml/kernelcore/internal/errcode"
)

// Context owns the scratch memory and last error of one session.
// A Context must be driven by one goroutine at a time.
type Context = compute.Context

// Config controls how a Context obtains memory.
type Config = compute.Config

// BufferStats describes the buffers a Context holds on one device.
type BufferStats = compute.BufferStats

// New creates a Context. Nothing is allocated until requested.
func New(cfg Config) *Context {
	return compute.New(cfg)
}

// DefaultConfig builds a Config from the KERNELCORE_* environment variables.
func DefaultConfig() Config {
	return compute.DefaultConfig()
}

// Code is the kind of a failure.
type Code = errcode.Code

// Error codes.
const (
	Success                = errcode.Success
	Unsupported            = errcode.Unsupported
	AcceleratorRuntime     = errcode.AcceleratorRuntime
	AcceleratorDNN         = errcode.AcceleratorDNN
	AcceleratorBLAS        = errcode.AcceleratorBLAS
	OutOfMemory            = errcode.OutOfMemory
	OutOfAcceleratorMemory = errcode.OutOfAcceleratorMemory
	IllegalArgument        = errcode.IllegalArgument
	Unknown                = errcode.Unknown
	Timeout                = errcode.Timeout
	NoData                 = errcode.NoData
	IllegalMessage         = errcode.IllegalMessage
	Interrupted            = errcode.Interrupted
)

// Error is an error carrying a Code.
type Error = errcode.Error

// CodeOf extracts the Code from err: Success for nil, Unknown without a code.
func CodeOf(err error) Code {
	return errcode.CodeOf(err)
}

// Location returns "file.go:line" of the caller, for error messages.
func Location() string {
	return errcode.Location(1)
}
