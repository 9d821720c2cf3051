package tensor

import (
	"fmt"
	"strings"

	"github.com/born-ml/kernelcore/internal/errcode"
)

// MaxNumDimensions is the maximum number of dimensions of a Shape.
const MaxNumDimensions = 8

// Shape describes the extent of a tensor with up to MaxNumDimensions dimensions.
//
// Shape is a value type; the zero value is the empty shape. Dimensions 0-3
// follow the height, width, depth (channels), size (cardinality) convention
// of the numeric kernels.
type Shape struct {
	dims [MaxNumDimensions]int
	n    int
}

// NewShape creates a shape from a list of dimensions.
func NewShape(dims ...int) (Shape, error) {
	var s Shape
	if err := s.SetDimensions(dims...); err != nil {
		return Shape{}, err
	}
	return s, nil
}

// MustShape is like NewShape but panics if the dimensions are invalid.
func MustShape(dims ...int) Shape {
	s, err := NewShape(dims...)
	if err != nil {
		panic(err)
	}
	return s
}

// Shape4 creates a 4-D shape in the height, width, depth, size convention.
func Shape4(height, width, depth, size int) (Shape, error) {
	return NewShape(height, width, depth, size)
}

// Clear resets the shape to empty.
func (s *Shape) Clear() {
	*s = Shape{}
}

// SetDimensions replaces all dimensions.
func (s *Shape) SetDimensions(dims ...int) error {
	if len(dims) > MaxNumDimensions {
		return errcode.New(errcode.IllegalArgument,
			"shape: %d dimensions exceed the maximum of %d", len(dims), MaxNumDimensions)
	}
	for i, d := range dims {
		if d < 0 {
			return errcode.New(errcode.IllegalArgument,
				"shape: negative dimension at index %d: %d", i, d)
		}
	}
	var next Shape
	next.n = copy(next.dims[:], dims)
	*s = next
	return nil
}

// SetDimension sets dimension i to d.
// If i is at or beyond NumDimensions the shape is extended to i+1 dimensions
// and any unset dimensions in between are set to 1.
func (s *Shape) SetDimension(i, d int) error {
	if i < 0 || i >= MaxNumDimensions {
		return errcode.New(errcode.IllegalArgument,
			"shape: dimension index %d out of range [0, %d)", i, MaxNumDimensions)
	}
	if d < 0 {
		return errcode.New(errcode.IllegalArgument, "shape: negative dimension %d", d)
	}
	for k := s.n; k < i; k++ {
		s.dims[k] = 1
	}
	if i >= s.n {
		s.n = i + 1
	}
	s.dims[i] = d
	return nil
}

// SetHeight sets dimension 0.
func (s *Shape) SetHeight(x int) error { return s.SetDimension(0, x) }

// SetWidth sets dimension 1.
func (s *Shape) SetWidth(x int) error { return s.SetDimension(1, x) }

// SetDepth sets dimension 2.
func (s *Shape) SetDepth(x int) error { return s.SetDimension(2, x) }

// SetSize sets dimension 3.
func (s *Shape) SetSize(x int) error { return s.SetDimension(3, x) }

// Reshape changes the number of dimensions to n.
//
// Growing pads the new dimensions with 1. Shrinking squashes the dropped
// trailing dimensions into the new last one, so NumElements is unchanged
// unless n is 0, which yields the empty shape.
func (s *Shape) Reshape(n int) error {
	if n < 0 || n > MaxNumDimensions {
		return errcode.New(errcode.IllegalArgument,
			"shape: cannot reshape to %d dimensions", n)
	}
	switch {
	case n == 0:
		s.Clear()
		return nil
	case n > s.n:
		for k := s.n; k < n; k++ {
			s.dims[k] = 1
		}
	case n < s.n:
		last := 1
		for k := n - 1; k < s.n; k++ {
			last *= s.dims[k]
		}
		s.dims[n-1] = last
		for k := n; k < s.n; k++ {
			s.dims[k] = 0
		}
	}
	s.n = n
	return nil
}

// ReshapeTo replaces the shape with other.
func (s *Shape) ReshapeTo(other Shape) {
	*s = other
}

// Dimension returns dimension i, or 1 if i is at or beyond NumDimensions.
func (s Shape) Dimension(i int) int {
	if i < 0 || i >= s.n {
		return 1
	}
	return s.dims[i]
}

// Dimensions returns a copy of the dimensions.
func (s Shape) Dimensions() []int {
	out := make([]int, s.n)
	copy(out, s.dims[:s.n])
	return out
}

// NumDimensions returns the number of dimensions.
func (s Shape) NumDimensions() int {
	return s.n
}

// Height returns dimension 0.
func (s Shape) Height() int { return s.Dimension(0) }

// Width returns dimension 1.
func (s Shape) Width() int { return s.Dimension(1) }

// NumChannels returns dimension 2.
func (s Shape) NumChannels() int { return s.Dimension(2) }

// Cardinality returns dimension 3.
func (s Shape) Cardinality() int { return s.Dimension(3) }

// NumElements returns the product of all dimensions (1 for the empty shape).
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s.dims[:s.n] {
		n *= d
	}
	return n
}

// IsEmpty reports whether the shape has no dimensions or a zero dimension.
func (s Shape) IsEmpty() bool {
	if s.n == 0 {
		return true
	}
	for _, d := range s.dims[:s.n] {
		if d == 0 {
			return true
		}
	}
	return false
}

// Equal checks if two shapes have the same dimensions. There is no
// broadcasting equivalence: {3} and {3,1} differ.
func (s Shape) Equal(other Shape) bool {
	return s.n == other.n && s.dims == other.dims
}

// String returns the shape as "[d0 d1 ...]".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s.dims[:s.n] {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, d)
	}
	b.WriteByte(']')
	return b.String()
}
