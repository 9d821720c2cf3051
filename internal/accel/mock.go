package accel

import (
	"fmt"

	"github.com/born-ml/kernelcore/internal/tensor"
)

// Verify that Mock implements Device.
var _ Device = (*Mock)(nil)

// MockMemory is memory handed out by Mock.
type MockMemory struct {
	id   int
	data []byte
}

// Len returns the size in bytes.
func (m *MockMemory) Len() int {
	return len(m.data)
}

// MockStats counts the calls a Mock received.
type MockStats struct {
	Allocs         int // Successful allocations.
	Frees          int // Frees of live memory.
	CallsAfterLoss int // Device calls made after Reset.
	Writes         int
}

// Mock is an in-memory accelerator for tests and for machines without a GPU.
// Reset simulates a device reset: the device reports Lost and any further
// device call is counted in CallsAfterLoss and fails with ErrLost.
type Mock struct {
	limit  int
	inUse  int
	nextID int
	live   map[int]*MockMemory
	lost   bool
	stats  MockStats
}

// NewMock creates a mock device with limit bytes of memory, 0 for unlimited.
func NewMock(limit int) *Mock {
	return &Mock{limit: limit, live: make(map[int]*MockMemory)}
}

// Name returns the device name.
func (m *Mock) Name() string {
	return "mock"
}

// Alloc returns size bytes of zeroed device memory.
func (m *Mock) Alloc(size int) (tensor.Memory, error) {
	if m.lost {
		m.stats.CallsAfterLoss++
		return nil, ErrLost
	}
	if size <= 0 {
		return nil, fmt.Errorf("accel: invalid allocation size %d", size)
	}
	if m.limit > 0 && m.inUse+size > m.limit {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, size, m.inUse, m.limit)
	}
	m.nextID++
	mem := &MockMemory{id: m.nextID, data: make([]byte, size)}
	m.live[mem.id] = mem
	m.inUse += size
	m.stats.Allocs++
	return mem, nil
}

// Free releases memory obtained from Alloc.
func (m *Mock) Free(mem tensor.Memory) error {
	if m.lost {
		m.stats.CallsAfterLoss++
		return ErrLost
	}
	mm, ok := mem.(*MockMemory)
	if !ok || m.live[mm.id] != mm {
		return fmt.Errorf("accel: free of foreign memory")
	}
	delete(m.live, mm.id)
	m.inUse -= len(mm.data)
	m.stats.Frees++
	return nil
}

// Write copies data into mem at offset.
func (m *Mock) Write(mem tensor.Memory, offset int, data []byte) error {
	if m.lost {
		m.stats.CallsAfterLoss++
		return ErrLost
	}
	mm, ok := mem.(*MockMemory)
	if !ok || m.live[mm.id] != mm {
		return fmt.Errorf("accel: write to foreign memory")
	}
	if offset < 0 || offset+len(data) > len(mm.data) {
		return fmt.Errorf("accel: write of %d bytes at %d overflows %d byte allocation", len(data), offset, len(mm.data))
	}
	copy(mm.data[offset:], data)
	m.stats.Writes++
	return nil
}

// Read returns a copy of mem's contents.
func (m *Mock) Read(mem tensor.Memory) ([]byte, error) {
	mm, ok := mem.(*MockMemory)
	if !ok || m.live[mm.id] != mm {
		return nil, fmt.Errorf("accel: read of foreign memory")
	}
	return append([]byte(nil), mm.data...), nil
}

// Lost reports whether Reset was called.
func (m *Mock) Lost() bool {
	return m.lost
}

// Reset simulates a device reset.
func (m *Mock) Reset() {
	m.lost = true
}

// Invalidate forgets all allocations without device calls.
func (m *Mock) Invalidate() {
	m.live = make(map[int]*MockMemory)
	m.inUse = 0
}

// Release frees the device.
func (m *Mock) Release() {
	m.Invalidate()
	m.lost = true
}

// InUse returns the bytes currently allocated.
func (m *Mock) InUse() int {
	return m.inUse
}

// Stats returns call counters.
func (m *Mock) Stats() MockStats {
	return m.stats
}
