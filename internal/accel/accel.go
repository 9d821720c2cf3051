// Package accel defines the accelerator capability acquired by a compute
// context, together with its WebGPU and mock implementations.
package accel

import (
	"errors"
	"fmt"

	"github.com/born-ml/kernelcore/internal/envconfig"
	"github.com/born-ml/kernelcore/internal/tensor"
)

var (
	// ErrUnavailable is returned when no accelerator can be acquired.
	ErrUnavailable = errors.New("accel: accelerator not available")
	// ErrOutOfMemory is returned when device memory is exhausted.
	ErrOutOfMemory = errors.New("accel: out of device memory")
	// ErrLost is returned by operations on a lost or released device.
	ErrLost = errors.New("accel: device lost")
)

// Device is an acquired accelerator.
//
// Memory returned by Alloc is only meaningful to the Device that produced it.
// Implementations are not required to be safe for concurrent use.
type Device interface {
	// Name identifies the device for diagnostics.
	Name() string

	// Alloc returns size bytes of device memory.
	Alloc(size int) (tensor.Memory, error)

	// Free releases memory obtained from Alloc.
	Free(m tensor.Memory) error

	// Write copies data into m at byte offset.
	Write(m tensor.Memory, offset int, data []byte) error

	// Lost reports whether the device was reset and must be reacquired.
	Lost() bool

	// Invalidate drops every handle without calling into the device.
	// Used once the device context is known to be unusable.
	Invalidate()

	// Release frees the device and all its handles.
	Release()
}

// Opener acquires a Device.
type Opener func() (Device, error)

// Unavailable is an Opener for contexts without an accelerator.
func Unavailable() (Device, error) {
	return nil, ErrUnavailable
}

// OpenerFor maps an accelerator selection (see envconfig.Accelerator) to an
// Opener. mockLimit is the memory of the mock device in bytes, 0 for none.
func OpenerFor(name string, mockLimit int) (Opener, error) {
	switch name {
	case envconfig.AcceleratorAuto, envconfig.AcceleratorWebGPU:
		return OpenWebGPU, nil
	case envconfig.AcceleratorMock:
		return func() (Device, error) { return NewMock(mockLimit), nil }, nil
	case envconfig.AcceleratorNone:
		return Unavailable, nil
	default:
		return nil, fmt.Errorf("accel: unknown accelerator %q", name)
	}
}
