//go:build windows

package accel

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/kernelcore/internal/tensor"
)

// Verify that WebGPU implements Device.
var _ Device = (*WebGPU)(nil)

// webgpuMemory is a storage buffer on a WebGPU device.
type webgpuMemory struct {
	buffer *wgpu.Buffer
	size   int
}

// Len returns the size in bytes.
func (m *webgpuMemory) Len() int {
	return m.size
}

// WebGPU is a Device backed by a WebGPU adapter.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO bindings.
type WebGPU struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	live map[*wgpu.Buffer]struct{}
	lost bool
}

// OpenWebGPU acquires the high-performance WebGPU adapter.
// Returns an error wrapping ErrUnavailable if WebGPU cannot be initialized.
func OpenWebGPU() (dev Device, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			dev = nil
			err = fmt.Errorf("%w: webgpu native library not available: %v", ErrUnavailable, r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("%w: webgpu: failed to create instance: %v", ErrUnavailable, instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: webgpu: failed to request adapter: %v", ErrUnavailable, adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: webgpu: failed to request device: %v", ErrUnavailable, deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: webgpu: failed to get queue", ErrUnavailable)
	}

	return &WebGPU{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
		live:     make(map[*wgpu.Buffer]struct{}),
	}, nil
}

// Name returns the device name.
func (g *WebGPU) Name() string {
	return "webgpu"
}

// Alloc creates a storage buffer of size bytes.
// Sizes are rounded up to the 4-byte alignment WebGPU copies require.
func (g *WebGPU) Alloc(size int) (mem tensor.Memory, err error) {
	if g.device == nil {
		return nil, ErrLost
	}
	if size <= 0 {
		return nil, fmt.Errorf("accel: invalid allocation size %d", size)
	}
	defer func() {
		if r := recover(); r != nil {
			mem = nil
			err = fmt.Errorf("%w: webgpu: %v", ErrOutOfMemory, r)
		}
	}()

	aligned := uint64(size+3) &^ 3
	buffer := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  aligned,
	})
	if buffer == nil {
		return nil, fmt.Errorf("%w: webgpu: %d bytes", ErrOutOfMemory, size)
	}
	g.live[buffer] = struct{}{}
	return &webgpuMemory{buffer: buffer, size: size}, nil
}

// Free releases a storage buffer.
func (g *WebGPU) Free(mem tensor.Memory) error {
	wm, ok := mem.(*webgpuMemory)
	if !ok {
		return fmt.Errorf("accel: free of foreign memory")
	}
	if _, ok := g.live[wm.buffer]; !ok {
		return fmt.Errorf("accel: free of unknown webgpu buffer")
	}
	delete(g.live, wm.buffer)
	wm.buffer.Release()
	return nil
}

// Write uploads data into mem at offset through a mapped staging buffer.
func (g *WebGPU) Write(mem tensor.Memory, offset int, data []byte) error {
	if g.device == nil {
		return ErrLost
	}
	wm, ok := mem.(*webgpuMemory)
	if !ok {
		return fmt.Errorf("accel: write to foreign memory")
	}
	if offset < 0 || offset+len(data) > wm.size {
		return fmt.Errorf("accel: write of %d bytes at %d overflows %d byte allocation", len(data), offset, wm.size)
	}
	if len(data) == 0 {
		return nil
	}
	if offset%4 != 0 {
		return fmt.Errorf("accel: webgpu writes must start at a multiple of 4, got %d", offset)
	}

	size := uint64(len(data)+3) &^ 3
	staging := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageCopySrc,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	if staging == nil {
		return fmt.Errorf("%w: webgpu staging buffer of %d bytes", ErrOutOfMemory, size)
	}
	defer staging.Release()

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mapped := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mapped, data)
	staging.Unmap()

	encoder := g.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(staging, 0, wm.buffer, uint64(offset), size)
	cmdBuffer := encoder.Finish(nil)
	g.queue.Submit(cmdBuffer)
	return nil
}

// Lost reports whether the device was invalidated or released.
func (g *WebGPU) Lost() bool {
	return g.lost
}

// Invalidate forgets every handle without calling into WebGPU.
func (g *WebGPU) Invalidate() {
	g.live = make(map[*wgpu.Buffer]struct{})
	g.queue = nil
	g.device = nil
	g.adapter = nil
	g.instance = nil
	g.lost = true
}

// Release frees all buffers and WebGPU objects.
func (g *WebGPU) Release() {
	for buffer := range g.live {
		buffer.Release()
	}
	g.live = make(map[*wgpu.Buffer]struct{})

	if g.queue != nil {
		g.queue.Release()
		g.queue = nil
	}
	if g.device != nil {
		g.device.Release()
		g.device = nil
	}
	if g.adapter != nil {
		g.adapter.Release()
		g.adapter = nil
	}
	if g.instance != nil {
		g.instance.Release()
		g.instance = nil
	}
	g.lost = true
}
