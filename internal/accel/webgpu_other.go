//go:build !windows

package accel

import "fmt"

// OpenWebGPU reports that the WebGPU accelerator is unavailable.
// The go-webgpu bindings are only wired up on Windows.
func OpenWebGPU() (Device, error) {
	return nil, fmt.Errorf("%w: webgpu support requires windows", ErrUnavailable)
}
