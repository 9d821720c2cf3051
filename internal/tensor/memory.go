package tensor

import "unsafe"

// Memory is a handle to a contiguous allocation on one device.
// Host allocations are HostMemory; accelerator allocations are opaque
// handles defined by the accelerator implementation.
type Memory interface {
	// Len returns the size of the allocation in bytes.
	Len() int
}

// HostMemory is host-visible memory. It is also how externally owned host
// arrays are wrapped into tensors.
type HostMemory []byte

// Len returns the size in bytes.
func (m HostMemory) Len() int {
	return len(m)
}

// HostBytes returns the bytes behind m if it is host memory.
func HostBytes(m Memory) ([]byte, bool) {
	hm, ok := m.(HostMemory)
	return hm, ok
}

// View interprets the first n elements of host memory as []T.
// Returns nil if m is not host memory or too small.
//
// WARNING: The slice aliases m; it is valid only as long as m is.
func View[T Element](m Memory, n int) []T {
	data, ok := HostBytes(m)
	if !ok || n <= 0 || len(data) < n*sizeOf[T]() {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy typed access, bounds checked above
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}

func sizeOf[T Element]() int {
	var dummy T
	return int(unsafe.Sizeof(dummy))
}
