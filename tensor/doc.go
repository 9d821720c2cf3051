// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides tensor descriptors for kernelcore numeric kernels.
//
// # Overview
//
// A Tensor describes data without owning it:
//   - Shape with up to 8 dimensions (height, width, depth, size, ...)
//   - DataType: Char (int8), Float (float32), Double (float64)
//   - DeviceType: Host or Accelerator
//   - a Memory handle and its capacity in bytes
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/kernelcore/compute"
//	    "github.com/born-ml/kernelcore/tensor"
//	)
//
//	func main() {
//	    ctx := compute.New(compute.DefaultConfig())
//	    defer ctx.Close()
//
//	    shape := tensor.MustShape(4, 4)
//	    mem, _ := ctx.AllOnes(tensor.Host, tensor.Float, shape.NumElements())
//
//	    t, _ := tensor.NewTensor(shape, tensor.Float, tensor.Host, mem, mem.Len())
//	    ones := tensor.View[float32](t.Memory(), t.NumElements())
//	}
//
// # Shapes
//
// Dimensions past the rank read as 1, so a 2D shape behaves as
// height × width × 1 × 1 in 4D code:
//
//	s := tensor.MustShape(5, 7)
//	s.NumChannels()  // 1
//	s.Reshape(4)     // [5 7 1 1]
//	s.Reshape(1)     // [35], dropped dimensions fold into the last one
//
// A shape is empty when it has rank 0 or any zero dimension. NumElements
// still reports 1 for rank 0.
//
// # Compatibility
//
// Null or empty tensors are compatible with anything. Otherwise two
// tensors must share a device and a data type.
package tensor
