package tensor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/kernelcore/internal/errcode"
)

func assertDims(t *testing.T, want []int, s Shape) {
	t.Helper()
	if diff := cmp.Diff(want, s.Dimensions()); diff != "" {
		t.Errorf("dimensions mismatch (-want +got):\n%s", diff)
	}
}

func TestShapeRoundTrip(t *testing.T) {
	for _, dims := range [][]int{
		{},
		{7},
		{3, 4},
		{2, 3, 4, 5},
		{1, 2, 3, 4, 5, 6, 7, 8},
	} {
		s, err := NewShape(dims...)
		require.NoError(t, err)
		assert.Equal(t, len(dims), s.NumDimensions())
		for i, d := range dims {
			assert.Equal(t, d, s.Dimension(i))
		}
		assertDims(t, dims, s)
	}
}

func TestNewShapeInvalid(t *testing.T) {
	_, err := NewShape(1, 2, 3, 4, 5, 6, 7, 8, 9)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))

	_, err = NewShape(3, -1)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))

	assert.Panics(t, func() { MustShape(-2) })
}

func TestShapeAccessors(t *testing.T) {
	s, err := Shape4(10, 20, 3, 8)
	require.NoError(t, err)

	assert.Equal(t, 10, s.Height())
	assert.Equal(t, 20, s.Width())
	assert.Equal(t, 3, s.NumChannels())
	assert.Equal(t, 8, s.Cardinality())
	assert.Equal(t, 4800, s.NumElements())

	// Missing trailing dimensions read as 1.
	m := MustShape(5, 6)
	assert.Equal(t, 1, m.NumChannels())
	assert.Equal(t, 1, m.Cardinality())
	assert.Equal(t, 1, m.Dimension(7))
	assert.Equal(t, 1, m.Dimension(-1))
}

func TestShapeNumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 0, MustShape(3, 0, 5).NumElements())
	assert.Equal(t, 60, MustShape(3, 4, 5).NumElements())
}

func TestShapeIsEmpty(t *testing.T) {
	assert.True(t, Shape{}.IsEmpty())
	assert.True(t, MustShape().IsEmpty())
	assert.True(t, MustShape(3, 0, 5).IsEmpty())
	assert.False(t, MustShape(1, 1, 1).IsEmpty())
}

func TestShapeSetDimension(t *testing.T) {
	var s Shape
	require.NoError(t, s.SetDimension(3, 9))
	assertDims(t, []int{1, 1, 1, 9}, s)

	require.NoError(t, s.SetDimension(1, 4))
	assertDims(t, []int{1, 4, 1, 9}, s)

	require.NoError(t, s.SetHeight(2))
	require.NoError(t, s.SetWidth(3))
	require.NoError(t, s.SetDepth(5))
	require.NoError(t, s.SetSize(7))
	assertDims(t, []int{2, 3, 5, 7}, s)
}

func TestShapeSetDimensionInvalid(t *testing.T) {
	s := MustShape(2, 2)

	err := s.SetDimension(8, 1)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))

	err = s.SetDimension(-1, 1)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))

	err = s.SetDimension(0, -3)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(err))

	assertDims(t, []int{2, 2}, s)
}

func TestShapeReshapeGrow(t *testing.T) {
	s := MustShape(4, 5)
	require.NoError(t, s.Reshape(4))
	assert.Equal(t, 4, s.NumDimensions())
	assertDims(t, []int{4, 5, 1, 1}, s)
}

func TestShapeReshapeShrinkSquashes(t *testing.T) {
	s := MustShape(2, 3, 4, 5)
	require.NoError(t, s.Reshape(2))
	assert.Equal(t, 2, s.NumDimensions())
	assertDims(t, []int{2, 60}, s)
	assert.Equal(t, 120, s.NumElements())

	// Dropping unit dimensions is plain truncation.
	u := MustShape(6, 7, 1, 1)
	require.NoError(t, u.Reshape(2))
	assert.True(t, u.Equal(MustShape(6, 7)))
}

func TestShapeReshapeToZero(t *testing.T) {
	s := MustShape(3, 3)
	require.NoError(t, s.Reshape(0))
	assert.Equal(t, 0, s.NumDimensions())
	assert.True(t, s.Equal(Shape{}))
}

func TestShapeReshapeInvalid(t *testing.T) {
	s := MustShape(3)
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(s.Reshape(9)))
	assert.Equal(t, errcode.IllegalArgument, errcode.CodeOf(s.Reshape(-1)))
}

func TestShapeReshapeTo(t *testing.T) {
	s := MustShape(1, 2, 3)
	s.ReshapeTo(MustShape(9))
	assert.True(t, s.Equal(MustShape(9)))
}

func TestShapeEqual(t *testing.T) {
	assert.True(t, MustShape(3, 4).Equal(MustShape(3, 4)))
	assert.False(t, MustShape(3).Equal(MustShape(3, 1)), "no broadcasting equivalence")
	assert.False(t, MustShape(3, 4).Equal(MustShape(4, 3)))

	// Shrinking and regrowing must not leave stale dimensions behind.
	s := MustShape(2, 9)
	require.NoError(t, s.Reshape(1))
	require.NoError(t, s.Reshape(2))
	assert.True(t, s.Equal(MustShape(18, 1)))
}

func TestShapeClearAndString(t *testing.T) {
	s := MustShape(2, 3)
	assert.Equal(t, "[2 3]", s.String())
	s.Clear()
	assert.Equal(t, "[]", s.String())
	assert.Equal(t, 0, s.NumDimensions())
}
