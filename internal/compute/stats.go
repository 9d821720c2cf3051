package compute

import "github.com/born-ml/kernelcore/internal/tensor"

// BufferStats describes the buffers a Context holds on one device.
type BufferStats struct {
	Device tensor.DeviceType

	WorkspaceBytes         int
	WorkspaceReallocations int

	AllOnesType          tensor.DataType
	AllOnesElements      int
	AllOnesReallocations int

	// AcceleratorAcquired is set on the accelerator entry while a device is held.
	AcceleratorAcquired bool
}

// Stats reports buffer usage, host first.
func (c *Context) Stats() []BufferStats {
	out := make([]BufferStats, 0, tensor.NumDeviceTypes)
	for d := range tensor.NumDeviceTypes {
		ws, ones := c.workspace[d], c.allOnes[d]
		out = append(out, BufferStats{
			Device:                 tensor.DeviceType(d),
			WorkspaceBytes:         ws.Capacity(),
			WorkspaceReallocations: ws.NumReallocations(),
			AllOnesType:            ones.DataType(),
			AllOnesElements:        ones.Size(),
			AllOnesReallocations:   ones.NumReallocations(),
			AcceleratorAcquired:    tensor.DeviceType(d) == tensor.Accelerator && c.accelerator != nil,
		})
	}
	return out
}
