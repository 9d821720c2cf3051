package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/kernelcore/internal/errcode"
)

// Test helpers

func hostTensor(t *testing.T, shape Shape, dtype DataType) Tensor {
	t.Helper()
	size := shape.NumElements() * dtype.Size()
	tt, err := NewTensor(shape, dtype, Host, HostMemory(make([]byte, size)), size)
	require.NoError(t, err)
	return tt
}

// fakeDeviceMemory stands in for an accelerator allocation.
type fakeDeviceMemory int

func (m fakeDeviceMemory) Len() int { return int(m) }

// DType Tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
		name  string
	}{
		{Char, 1, "char"},
		{Float, 4, "float"},
		{Double, 8, "double"},
		{DataType(42), 0, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.dtype.Size())
			assert.Equal(t, tt.name, tt.dtype.String())
			assert.Equal(t, tt.size > 0, tt.dtype.Valid())
		})
	}
}

type celsius float32

func TestDataTypeOf(t *testing.T) {
	assert.Equal(t, Char, DataTypeOf[int8]())
	assert.Equal(t, Float, DataTypeOf[float32]())
	assert.Equal(t, Double, DataTypeOf[float64]())
	assert.Equal(t, Float, DataTypeOf[celsius]())
}

func TestDeviceType(t *testing.T) {
	assert.Equal(t, "host", Host.String())
	assert.Equal(t, "accelerator", Accelerator.String())
	assert.False(t, DeviceType(5).Valid())
	assert.Equal(t, 2, NumDeviceTypes)
}

// Tensor Tests

func TestNewTensor(t *testing.T) {
	shape := MustShape(2, 3)
	data := make([]byte, 24)
	tt, err := NewTensor(shape, Float, Host, HostMemory(data), len(data))
	require.NoError(t, err)

	assert.True(t, tt.Shape().Equal(shape))
	assert.Equal(t, Float, tt.DataType())
	assert.Equal(t, Host, tt.DeviceType())
	assert.Equal(t, 24, tt.MemorySize())
	assert.Equal(t, 6, tt.NumElements())
	assert.False(t, tt.IsNull())
	assert.Equal(t, "Tensor[float][2 3] on host", tt.String())
}

func TestNewTensorRejectsSmallMemory(t *testing.T) {
	data := make([]byte, 23)
	_, err := NewTensor(MustShape(2, 3), Float, Host, HostMemory(data), len(data))
	require.Error(t, err)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))
}

func TestNewTensorRejectsUnknownTypes(t *testing.T) {
	_, err := NewTensor(MustShape(1), DataType(7), Host, nil, 0)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))

	_, err = NewTensor(MustShape(1), Float, DeviceType(7), nil, 0)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))
}

func TestNullTensor(t *testing.T) {
	var tt Tensor
	assert.True(t, tt.IsNull())
	assert.True(t, tt.IsEmpty())
	assert.Contains(t, tt.String(), "(null)")

	// A shape without memory is allowed; it describes geometry only.
	geom, err := NewTensor(MustShape(4, 4), Double, Accelerator, nil, 0)
	require.NoError(t, err)
	assert.True(t, geom.IsNull())
	assert.False(t, geom.IsEmpty())
}

func TestTensorSetMemory(t *testing.T) {
	tt, err := NewTensor(MustShape(8), Float, Accelerator, nil, 0)
	require.NoError(t, err)

	tt.SetMemory(fakeDeviceMemory(32), 32)
	assert.False(t, tt.IsNull())
	assert.Equal(t, 32, tt.MemorySize())
	assert.Equal(t, 32, tt.Memory().Len())
}

func TestTensorIsView(t *testing.T) {
	tt := hostTensor(t, MustShape(4), Float)
	copied := tt

	View[float32](tt.Memory(), 4)[2] = 7
	assert.Equal(t, float32(7), View[float32](copied.Memory(), 4)[2])
}

func TestAreCompatible(t *testing.T) {
	hostFloat := hostTensor(t, MustShape(2, 2), Float)
	hostDouble := hostTensor(t, MustShape(2, 2), Double)
	hostFloat2 := hostTensor(t, MustShape(5), Float)

	devFloat, err := NewTensor(MustShape(2, 2), Float, Accelerator, fakeDeviceMemory(16), 16)
	require.NoError(t, err)

	emptyDev, err := NewTensor(MustShape(3, 0, 5), Double, Accelerator, fakeDeviceMemory(0), 0)
	require.NoError(t, err)

	var null Tensor

	tests := []struct {
		name string
		a, b Tensor
		want bool
	}{
		{"same device and type", hostFloat, hostFloat2, true},
		{"different type", hostFloat, hostDouble, false},
		{"different device", hostFloat, devFloat, false},
		{"null left", null, devFloat, true},
		{"null right", hostDouble, null, true},
		{"empty left", emptyDev, hostFloat, true},
		{"empty right", hostFloat, emptyDev, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreCompatible(tt.a, tt.b))
			assert.Equal(t, tt.want, AreCompatible(tt.b, tt.a))
		})
	}
}

// View Tests

func TestView(t *testing.T) {
	mem := HostMemory(make([]byte, 16))

	f := View[float32](mem, 4)
	require.Len(t, f, 4)
	f[3] = 1.5
	assert.Equal(t, float64(1.5), float64(View[float32](mem, 4)[3]))

	assert.Len(t, View[float64](mem, 2), 2)
	assert.Nil(t, View[float64](mem, 3), "too small")
	assert.Nil(t, View[float32](fakeDeviceMemory(16), 4), "not host memory")
	assert.Nil(t, View[int8](mem, 0))
}

func TestNewTensorSizeOverflow(t *testing.T) {
	huge := MustShape(1<<20, 1<<20, 1<<20, 1<<20)
	mem := HostMemory(make([]byte, 64))

	_, err := NewTensor(huge, Double, Host, mem, mem.Len())
	require.Error(t, err)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))

	// Without memory the shape only describes geometry.
	_, err = NewTensor(huge, Double, Host, nil, 0)
	assert.NoError(t, err)
}

func TestTensorZeroLengthHostMemoryIsNull(t *testing.T) {
	tt, err := NewTensor(MustShape(2), Float, Host, nil, 0)
	require.NoError(t, err)

	tt.SetMemory(HostMemory(nil), 0)
	assert.True(t, tt.IsNull())

	tt.SetMemory(HostMemory{}, 0)
	assert.True(t, tt.IsNull())
	assert.True(t, AreCompatible(tt, hostTensor(t, MustShape(2), Double)))

	tt.SetMemory(HostMemory(make([]byte, 8)), 8)
	assert.False(t, tt.IsNull())
}
