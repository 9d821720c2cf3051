// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor descriptors.
//
// The package defines the value types numeric kernels exchange:
//   - Shape: up to MaxNumDimensions dimensions, height/width/depth/size first
//   - Tensor: a non-owning view pairing a Shape with typed device memory
//   - DataType, DeviceType: the closed element and device enumerations
//
// Example:
//
//	shape := tensor.MustShape(32, 32, 3, 16)
//	t, err := tensor.NewTensor(shape, tensor.Float, tensor.Host, mem, mem.Len())
package tensor

import (
	"github.com/born-ml/kernelcore/internal/tensor"
)

// Type aliases for public API

// Element is a constraint for Go types that map onto a DataType.
type Element = tensor.Element

// DataType represents the element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Char   DataType = tensor.Char
	Float  DataType = tensor.Float
	Double DataType = tensor.Double
)

// DeviceType represents the device where tensor memory resides.
type DeviceType = tensor.DeviceType

// Device constants.
const (
	Host        DeviceType = tensor.Host
	Accelerator DeviceType = tensor.Accelerator
)

// NumDeviceTypes is the number of device types.
const NumDeviceTypes = tensor.NumDeviceTypes

// MaxNumDimensions is the largest rank a Shape can hold.
const MaxNumDimensions = tensor.MaxNumDimensions

// Shape represents the dimensions of a tensor.
// Example: MustShape(2, 3, 4) is a 3D shape with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a shape plus a borrowed memory handle.
//
// A Tensor never owns its memory: whoever allocated the memory keeps it
// valid for the Tensor's lifetime and frees it afterwards.
type Tensor = tensor.Tensor

// Memory is an opaque handle to device memory.
type Memory = tensor.Memory

// HostMemory is Memory backed by host bytes.
type HostMemory = tensor.HostMemory

// NewShape creates a shape from dimensions.
func NewShape(dims ...int) (Shape, error) {
	return tensor.NewShape(dims...)
}

// MustShape is like NewShape but panics on invalid dimensions.
func MustShape(dims ...int) Shape {
	return tensor.MustShape(dims...)
}

// Shape4 creates a height × width × depth × size shape.
func Shape4(height, width, depth, size int) (Shape, error) {
	return tensor.Shape4(height, width, depth, size)
}

// NewTensor creates a tensor over memory holding memorySize bytes.
func NewTensor(shape Shape, dataType DataType, deviceType DeviceType, memory Memory, memorySize int) (Tensor, error) {
	return tensor.NewTensor(shape, dataType, deviceType, memory, memorySize)
}

// AreCompatible reports whether a and b can take part in the same operation.
func AreCompatible(a, b Tensor) bool {
	return tensor.AreCompatible(a, b)
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Element]() DataType {
	return tensor.DataTypeOf[T]()
}

// View reinterprets host memory as n elements of T.
// Returns nil for accelerator memory or if m is too small.
func View[T Element](m Memory, n int) []T {
	return tensor.View[T](m, n)
}
