// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package compute_test

import (
	"strings"
	"testing"

	"github.com/born-ml/kernelcore/accel"
	"github.com/born-ml/kernelcore/compute"
	"github.com/born-ml/kernelcore/tensor"
)

// TestContextAPI exercises the public Context through the facade.
func TestContextAPI(t *testing.T) {
	mock := accel.NewMock(0)
	ctx := compute.New(compute.Config{
		Accelerator: func() (accel.Device, error) { return mock, nil },
	})
	defer ctx.Close()

	mem, err := ctx.AllOnes(tensor.Accelerator, tensor.Double, 2)
	if err != nil {
		t.Fatalf("AllOnes failed: %v", err)
	}
	if mem.Len() != 16 {
		t.Errorf("AllOnes length = %d, want 16", mem.Len())
	}

	if code := ctx.SetError(compute.OutOfMemory, compute.Location()); code != compute.OutOfMemory {
		t.Errorf("SetError returned %v", code)
	}
	if !strings.HasPrefix(ctx.LastErrorMessage(), "compute_test.go:") {
		t.Errorf("LastErrorMessage() = %q, want source location", ctx.LastErrorMessage())
	}
	if compute.CodeOf(ctx.Err()) != compute.OutOfMemory {
		t.Errorf("CodeOf(Err()) = %v", compute.CodeOf(ctx.Err()))
	}
}
