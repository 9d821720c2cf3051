package memory

import (
	"errors"
	"fmt"

	"github.com/born-ml/kernelcore/internal/tensor"
)

// ErrOutOfMemory is returned when host memory cannot be obtained.
var ErrOutOfMemory = errors.New("host: out of memory")

// HostAllocator hands out host memory from anonymous mappings outside the Go
// heap, so exhaustion is an error instead of a fatal runtime failure.
//
// An optional byte limit caps the memory in use at any time. HostAllocator
// is not safe for concurrent use.
type HostAllocator struct {
	limit int
	inUse int
}

// NewHostAllocator creates an allocator. limit is in bytes; 0 means no limit.
func NewHostAllocator(limit int) *HostAllocator {
	return &HostAllocator{limit: limit}
}

// Alloc returns size bytes of zeroed host memory.
func (a *HostAllocator) Alloc(size int) (tensor.HostMemory, error) {
	if size <= 0 {
		return nil, fmt.Errorf("host: invalid allocation size %d", size)
	}
	if a.limit > 0 && a.inUse+size > a.limit {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, size, a.inUse, a.limit)
	}
	data, err := mapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrOutOfMemory, size, err)
	}
	a.inUse += size
	return tensor.HostMemory(data), nil
}

// Free releases memory obtained from Alloc.
func (a *HostAllocator) Free(m tensor.HostMemory) error {
	if len(m) == 0 {
		return nil
	}
	if err := unmapAnon(m); err != nil {
		return fmt.Errorf("host: free %d bytes: %w", len(m), err)
	}
	a.inUse -= len(m)
	return nil
}

// InUse returns the bytes currently allocated.
func (a *HostAllocator) InUse() int {
	return a.inUse
}

// Limit returns the byte limit, 0 for none.
func (a *HostAllocator) Limit() int {
	return a.limit
}
