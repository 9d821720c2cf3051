// Package compute implements the Context shared by the numeric kernels of a
// computation session: scratch memory per device, the accelerator capability,
// and the last-error slot.
package compute

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/born-ml/kernelcore/internal/accel"
	"github.com/born-ml/kernelcore/internal/errcode"
	"github.com/born-ml/kernelcore/internal/memory"
	"github.com/born-ml/kernelcore/internal/numutil"
	"github.com/born-ml/kernelcore/internal/parallel"
	"github.com/born-ml/kernelcore/internal/tensor"
)

// Context owns the reusable memory of one computation session.
//
// A Context is driven by one goroutine at a time; it has no internal
// locking. Use one Context per worker.
//
// Example:
//
//	ctx := compute.New(compute.DefaultConfig())
//	defer ctx.Close()
//
//	ws, err := ctx.Workspace(tensor.Host, 1<<20)
//	if err != nil {
//	    return ctx.PassError(errcode.CodeOf(err), "conv2d")
//	}
type Context struct {
	id     uuid.UUID
	logger *slog.Logger

	host *memory.HostAllocator
	open accel.Opener
	fill parallel.Config

	workspace [tensor.NumDeviceTypes]*memory.Buffer
	allOnes   [tensor.NumDeviceTypes]*memory.Buffer

	// accelerator is nil until first use and after InvalidateGPU.
	accelerator accel.Device

	lastError        errcode.Code
	lastErrorMessage string
}

// New creates a Context. Nothing is allocated until requested.
func New(cfg Config) *Context {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	open := cfg.Accelerator
	if open == nil {
		open = accel.Unavailable
	}

	c := &Context{
		id:   uuid.New(),
		host: memory.NewHostAllocator(cfg.HostMemoryLimit),
		open: open,
		fill: cfg.Fill,
	}
	c.logger = logger.With("session", c.id.String())

	alloc := deviceAllocator{c}
	for d := range tensor.NumDeviceTypes {
		c.workspace[d] = memory.NewBuffer(alloc)
		c.allOnes[d] = memory.NewBuffer(alloc)
	}
	return c
}

// ID returns the session id used in log records.
func (c *Context) ID() string {
	return c.id.String()
}

// Workspace returns at least size bytes of scratch memory on device.
//
// The memory is borrowed until the next call that may reallocate it
// (a larger Workspace request, ClearWorkspace, Clear, InvalidateGPU, Close).
// Failures are recorded in the last-error slot and returned.
func (c *Context) Workspace(device tensor.DeviceType, size int) (tensor.Memory, error) {
	if !device.Valid() {
		return nil, c.fail("workspace", errcode.New(errcode.IllegalArgument, "invalid device %d", int(device)))
	}
	c.dropLostAccelerator(device)
	b := c.workspace[device]
	before := b.NumReallocations()
	if err := b.Init(device, tensor.Char, size); err != nil {
		return nil, c.fail("workspace", err)
	}
	if b.NumReallocations() != before {
		c.logger.Debug("workspace reallocated", "device", device, "bytes", b.Capacity(), "reallocations", b.NumReallocations())
	}
	return b.Memory(), nil
}

// ClearWorkspace releases the workspace of one device.
func (c *Context) ClearWorkspace(device tensor.DeviceType) {
	if device.Valid() {
		c.workspace[device].Clear()
	}
}

// AllOnes returns memory holding size elements of dataType, all equal to 1.
//
// The buffer is refilled whenever it is reallocated; a request that fits the
// current buffer reuses the previous fill. Kernels must not write to it.
func (c *Context) AllOnes(device tensor.DeviceType, dataType tensor.DataType, size int) (tensor.Memory, error) {
	if !device.Valid() {
		return nil, c.fail("all-ones", errcode.New(errcode.IllegalArgument, "invalid device %d", int(device)))
	}
	c.dropLostAccelerator(device)
	b := c.allOnes[device]
	before := b.NumReallocations()
	if err := b.Init(device, dataType, size); err != nil {
		return nil, c.fail("all-ones", err)
	}
	if b.NumReallocations() != before {
		start := numutil.Time()
		if err := c.fillOnes(b); err != nil {
			// Never hand out a buffer that missed its fill.
			b.Clear()
			return nil, c.fail("all-ones", err)
		}
		c.logger.Debug("all-ones refilled", "device", device, "type", dataType, "elements", b.Size(), "elapsed_us", numutil.Time()-start)
	}
	return b.Memory(), nil
}

// ClearAllOnes releases the all-ones buffer of one device.
func (c *Context) ClearAllOnes(device tensor.DeviceType) {
	if device.Valid() {
		c.allOnes[device].Clear()
	}
}

// Accelerator returns the accelerator, acquiring it on first use.
// Later calls return the same Device until InvalidateGPU, or until the
// device reports it was lost, in which case it is reacquired.
// Acquisition failures are recorded as AcceleratorRuntime and returned.
func (c *Context) Accelerator() (accel.Device, error) {
	dev, err := c.acquire()
	if err != nil {
		return nil, c.fail("accelerator", err)
	}
	return dev, nil
}

// dropLostAccelerator invalidates accelerator state once the device reports
// a loss, so buffers that still fit are not handed out on a dead device.
func (c *Context) dropLostAccelerator(device tensor.DeviceType) {
	if device != tensor.Accelerator || c.accelerator == nil || !c.accelerator.Lost() {
		return
	}
	c.logger.Warn("accelerator lost, invalidating device state", "device", c.accelerator.Name())
	c.InvalidateGPU()
}

func (c *Context) acquire() (accel.Device, error) {
	c.dropLostAccelerator(tensor.Accelerator)
	if c.accelerator != nil {
		return c.accelerator, nil
	}

	start := numutil.Time()
	dev, err := c.open()
	if err != nil {
		return nil, errcode.Wrap(errcode.AcceleratorRuntime, err, "acquiring accelerator")
	}
	if dev.Lost() {
		dev.Invalidate()
		return nil, errcode.Wrap(errcode.AcceleratorRuntime, accel.ErrLost, "acquiring accelerator")
	}
	c.accelerator = dev
	c.logger.Debug("accelerator acquired", "device", dev.Name(), "elapsed_us", numutil.Time()-start)
	return dev, nil
}

// Clear releases all buffers on both devices and resets the last error.
// The accelerator stays acquired.
func (c *Context) Clear() {
	for d := range tensor.NumDeviceTypes {
		c.workspace[d].Clear()
		c.allOnes[d].Clear()
	}
	c.ResetLastError()
}

// InvalidateGPU drops all accelerator state after the device was lost or
// reset, without calling into the device. The accelerator is reacquired on
// next use. Host buffers and the last error are kept.
func (c *Context) InvalidateGPU() {
	c.workspace[tensor.Accelerator].InvalidateGPU()
	c.allOnes[tensor.Accelerator].InvalidateGPU()
	if c.accelerator != nil {
		c.accelerator.Invalidate()
		c.accelerator = nil
	}
}

// Close releases all memory and the accelerator.
func (c *Context) Close() {
	for d := range tensor.NumDeviceTypes {
		c.workspace[d].Clear()
		c.allOnes[d].Clear()
	}
	if c.accelerator != nil {
		c.accelerator.Release()
		c.accelerator = nil
	}
}

// deviceAllocator routes Buffer allocations to the host allocator or the
// lazily acquired accelerator.
type deviceAllocator struct {
	c *Context
}

func (a deviceAllocator) Alloc(device tensor.DeviceType, size int) (tensor.Memory, error) {
	if device == tensor.Host {
		mem, err := a.c.host.Alloc(size)
		if err != nil {
			return nil, err
		}
		return mem, nil
	}
	dev, err := a.c.acquire()
	if err != nil {
		return nil, err
	}
	mem, err := dev.Alloc(size)
	switch {
	case err == nil:
		return mem, nil
	case errors.Is(err, accel.ErrOutOfMemory):
		return nil, err
	case errors.Is(err, accel.ErrLost):
		return nil, errcode.Wrap(errcode.AcceleratorRuntime, err, "accelerator lost")
	default:
		a.c.logger.Warn("accelerator allocation failed", "device", dev.Name(), "bytes", size, "error", err)
		return nil, err
	}
}

func (a deviceAllocator) Free(device tensor.DeviceType, m tensor.Memory) {
	if device == tensor.Host {
		hm, ok := m.(tensor.HostMemory)
		if !ok {
			a.c.logger.Warn("host buffer holds foreign memory", "bytes", m.Len())
			return
		}
		if err := a.c.host.Free(hm); err != nil {
			a.c.logger.Warn("host free failed", "error", err)
		}
		return
	}
	dev := a.c.accelerator
	if dev == nil || dev.Lost() {
		// The memory went away with the device.
		return
	}
	if err := dev.Free(m); err != nil {
		a.c.logger.Warn("accelerator free failed", "device", dev.Name(), "error", err)
	}
}
