// Package tensor provides the shape, data type, device and tensor view types
// shared by kernelcore and the numeric kernels built on it.
package tensor

// Element is a constraint for Go types that map onto a DataType.
type Element interface {
	~int8 | ~float32 | ~float64
}

// DataType represents runtime type information for tensor elements.
type DataType int

// Supported data types.
const (
	Char DataType = iota
	Float
	Double
)

// Size returns the byte size of one element, or 0 for an unknown type.
func (dt DataType) Size() int {
	switch dt {
	case Char:
		return 1
	case Float:
		return 4
	case Double:
		return 8
	default:
		return 0
	}
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt.Size() > 0
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Char:
		return "char"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// DataTypeOf returns the DataType matching the Go element type T.
func DataTypeOf[T Element]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case int8:
		return Char
	case float32:
		return Float
	case float64:
		return Double
	}
	// Named types fall through the type switch; use the size instead.
	switch sizeOf[T]() {
	case 1:
		return Char
	case 4:
		return Float
	default:
		return Double
	}
}
