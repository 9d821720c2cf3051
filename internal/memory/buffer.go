// Package memory implements device-typed, lazily grown memory buffers.
package memory

import (
	"fmt"

	"github.com/born-ml/kernelcore/internal/errcode"
	"github.com/born-ml/kernelcore/internal/tensor"
)

// Allocator obtains and releases raw memory on a device.
type Allocator interface {
	Alloc(device tensor.DeviceType, size int) (tensor.Memory, error)
	Free(device tensor.DeviceType, m tensor.Memory)
}

// Buffer is a growth-only memory region on one device.
//
// Init reuses the current allocation whenever it is large enough for the
// request; otherwise the memory is replaced and the reallocation counter
// advances. Buffer is not safe for concurrent use.
type Buffer struct {
	alloc Allocator

	deviceType       tensor.DeviceType
	dataType         tensor.DataType
	size             int // elements of dataType held by memory
	memory           tensor.Memory
	numReallocations int
}

// NewBuffer creates an empty buffer that allocates through alloc.
func NewBuffer(alloc Allocator) *Buffer {
	return &Buffer{alloc: alloc, dataType: tensor.Char}
}

// Init ensures the buffer holds at least size elements of dataType on device.
//
// A size of 0 releases the memory. On failure the buffer is left empty and the
// returned *errcode.Error carries OutOfMemory or OutOfAcceleratorMemory, or the
// code already attached by the allocator.
func (b *Buffer) Init(device tensor.DeviceType, dataType tensor.DataType, size int) error {
	if !device.Valid() || !dataType.Valid() || size < 0 {
		return errcode.New(errcode.IllegalArgument,
			"buffer: invalid request for %d %s elements on %s", size, dataType, device)
	}
	if size == 0 {
		b.Clear()
		return nil
	}

	fits := b.memory != nil &&
		b.deviceType == device &&
		b.dataType == dataType &&
		b.size >= size
	if fits {
		return nil
	}

	b.Clear()

	sizeInBytes := size * dataType.Size()
	mem, err := b.alloc.Alloc(device, sizeInBytes)
	if err != nil {
		code := errcode.OutOfMemory
		if device == tensor.Accelerator {
			code = errcode.OutOfAcceleratorMemory
		}
		if c := errcode.CodeOf(err); c != errcode.Unknown {
			code = c
		}
		return errcode.Wrap(code, err, fmt.Sprintf("buffer: allocating %d bytes on %s", sizeInBytes, device))
	}

	b.memory = mem
	b.deviceType = device
	b.dataType = dataType
	b.size = size
	b.numReallocations++
	return nil
}

// Clear releases the memory. Device and data type are kept; the reallocation
// counter is a lifetime count and is not reset.
func (b *Buffer) Clear() {
	if b.memory != nil {
		b.alloc.Free(b.deviceType, b.memory)
	}
	b.memory = nil
	b.size = 0
}

// InvalidateGPU forgets accelerator memory without freeing it, for use after
// the accelerator context was lost. Host buffers are unaffected.
func (b *Buffer) InvalidateGPU() {
	if b.deviceType != tensor.Accelerator {
		return
	}
	b.memory = nil
	b.size = 0
}

// Memory returns the current allocation, nil if empty.
// The handle is borrowed: it is invalidated by the next growing Init, Clear
// or InvalidateGPU.
func (b *Buffer) Memory() tensor.Memory {
	return b.memory
}

// Size returns the number of dataType elements held.
func (b *Buffer) Size() int {
	return b.size
}

// Capacity returns the held capacity in bytes.
func (b *Buffer) Capacity() int {
	return b.size * b.dataType.Size()
}

// DeviceType returns the device of the last allocation.
func (b *Buffer) DeviceType() tensor.DeviceType {
	return b.deviceType
}

// DataType returns the element type of the last allocation.
func (b *Buffer) DataType() tensor.DataType {
	return b.dataType
}

// NumReallocations returns how many times memory was (re)allocated.
func (b *Buffer) NumReallocations() int {
	return b.numReallocations
}
