package tensor

import (
	"fmt"
	"math"

	"github.com/born-ml/kernelcore/internal/errcode"
)

// Tensor is a view over memory owned by someone else: either the hosting
// environment or a buffer inside a compute.Context.
//
// Tensor holds a Shape by value plus the element type, the device and the
// memory handle. Copying a Tensor copies the view, never the data.
type Tensor struct {
	shape      Shape
	dataType   DataType
	deviceType DeviceType
	memory     Memory
	memorySize int
}

// NewTensor creates a tensor view.
//
// memorySize is the capacity of memory in bytes. A tensor with non-nil memory
// must have room for shape.NumElements() elements of dataType.
//
// Example:
//
//	data := make([]byte, 4*3*4)
//	t, err := tensor.NewTensor(tensor.MustShape(4, 3), tensor.Float, tensor.Host,
//	    tensor.HostMemory(data), len(data))
func NewTensor(shape Shape, dataType DataType, deviceType DeviceType, memory Memory, memorySize int) (Tensor, error) {
	if !dataType.Valid() {
		return Tensor{}, errcode.New(errcode.IllegalArgument, "tensor: invalid data type %d", int(dataType))
	}
	if !deviceType.Valid() {
		return Tensor{}, errcode.New(errcode.IllegalArgument, "tensor: invalid device type %d", int(deviceType))
	}
	if memory != nil {
		need, ok := byteSize(shape, dataType)
		if !ok {
			return Tensor{}, errcode.New(errcode.IllegalArgument,
				"tensor: %v %s elements overflow the addressable size", shape, dataType)
		}
		if memorySize < need {
			return Tensor{}, errcode.New(errcode.IllegalArgument,
				"tensor: %d bytes of memory cannot hold %v %s elements (%d bytes)",
				memorySize, shape, dataType, need)
		}
	}
	return Tensor{
		shape:      shape,
		dataType:   dataType,
		deviceType: deviceType,
		memory:     memory,
		memorySize: memorySize,
	}, nil
}

// Shape returns the tensor's shape.
func (t Tensor) Shape() Shape {
	return t.shape
}

// DataType returns the element type.
func (t Tensor) DataType() DataType {
	return t.dataType
}

// DeviceType returns the device the memory lives on.
func (t Tensor) DeviceType() DeviceType {
	return t.deviceType
}

// Memory returns the memory handle, nil for a null tensor.
func (t Tensor) Memory() Memory {
	return t.memory
}

// MemorySize returns the capacity of the memory handle in bytes.
func (t Tensor) MemorySize() int {
	return t.memorySize
}

// SetMemory replaces the memory handle and its capacity.
func (t *Tensor) SetMemory(memory Memory, memorySize int) {
	t.memory = memory
	t.memorySize = memorySize
}

// IsNull reports whether the tensor has no memory.
// Zero-length host memory, including HostMemory(nil), counts as none.
func (t Tensor) IsNull() bool {
	if t.memory == nil {
		return true
	}
	hm, ok := t.memory.(HostMemory)
	return ok && len(hm) == 0
}

// IsEmpty reports whether the tensor's shape is empty.
func (t Tensor) IsEmpty() bool {
	return t.shape.IsEmpty()
}

// NumElements returns the number of elements described by the shape.
func (t Tensor) NumElements() int {
	return t.shape.NumElements()
}

// String returns a human-readable representation of the tensor.
func (t Tensor) String() string {
	if t.IsNull() {
		return fmt.Sprintf("Tensor[%s]%v on %s (null)", t.dataType, t.shape, t.deviceType)
	}
	return fmt.Sprintf("Tensor[%s]%v on %s", t.dataType, t.shape, t.deviceType)
}

// AreCompatible reports whether a and b can take part in one operation.
// Null or empty tensors are wildcards; otherwise device and data type must match.
func AreCompatible(a, b Tensor) bool {
	if a.IsNull() || a.IsEmpty() || b.IsNull() || b.IsEmpty() {
		return true
	}
	return a.deviceType == b.deviceType && a.dataType == b.dataType
}

// byteSize returns the bytes needed for shape's elements of dataType, 0 for an
// empty shape. ok is false if the product overflows int.
func byteSize(shape Shape, dataType DataType) (n int, ok bool) {
	if shape.IsEmpty() {
		return 0, true
	}
	n = dataType.Size()
	for _, d := range shape.dims[:shape.n] {
		if n > math.MaxInt/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}
