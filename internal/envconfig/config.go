// Package envconfig reads kernelcore settings from environment variables.
//
// Every setting is a function so the environment is consulted at call time:
//   - KERNELCORE_DEBUG: log level (see LogLevel)
//   - KERNELCORE_ACCELERATOR: accelerator selection (see Accelerator)
//   - KERNELCORE_HOST_MEMORY_LIMIT: host buffer byte budget, 0 for none
//   - KERNELCORE_ACCELERATOR_MEMORY_LIMIT: mock accelerator byte budget, 0 for none
//   - KERNELCORE_PARALLEL_FILL: fill large host buffers with worker goroutines
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns an environment variable stripped of leading and trailing
// quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel maps KERNELCORE_DEBUG to a slog level.
// "1"/"true" selects Debug; other integers step down by 4 per unit
// (2 = one level below Debug).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("KERNELCORE_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}
	return level
}

// Accelerator selection values.
const (
	AcceleratorAuto   = "auto"
	AcceleratorWebGPU = "webgpu"
	AcceleratorMock   = "mock"
	AcceleratorNone   = "none"
)

// Accelerator returns the configured accelerator: auto, webgpu, mock or none.
// Unknown values fall back to auto.
func Accelerator() string {
	s := strings.ToLower(Var("KERNELCORE_ACCELERATOR"))
	switch s {
	case "":
		return AcceleratorAuto
	case AcceleratorAuto, AcceleratorWebGPU, AcceleratorMock, AcceleratorNone:
		return s
	default:
		slog.Warn("invalid accelerator, using default", "value", s, "default", AcceleratorAuto)
		return AcceleratorAuto
	}
}

var (
	// HostMemoryLimit caps the bytes held by host buffers of one context. 0 disables the cap.
	HostMemoryLimit = Uint64("KERNELCORE_HOST_MEMORY_LIMIT", 0)
	// AcceleratorMemoryLimit caps the memory of the mock accelerator. 0 disables the cap.
	AcceleratorMemoryLimit = Uint64("KERNELCORE_ACCELERATOR_MEMORY_LIMIT", 0)
	// ParallelFill enables worker goroutines for large host fills.
	ParallelFill = BoolWithDefault("KERNELCORE_PARALLEL_FILL")
)

// BoolWithDefault returns a getter for a boolean variable.
// Unparseable non-empty values count as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Uint64 returns a getter for an unsigned integer variable.
func Uint64(key string, defaultValue uint64) func() uint64 {
	return func() uint64 {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}
		return defaultValue
	}
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns all settings with their current values.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"KERNELCORE_DEBUG":                    {"KERNELCORE_DEBUG", LogLevel(), "Show additional debug information (e.g. KERNELCORE_DEBUG=1)"},
		"KERNELCORE_ACCELERATOR":              {"KERNELCORE_ACCELERATOR", Accelerator(), "Accelerator to use: auto, webgpu, mock or none (default auto)"},
		"KERNELCORE_HOST_MEMORY_LIMIT":        {"KERNELCORE_HOST_MEMORY_LIMIT", HostMemoryLimit(), "Maximum bytes of host buffer memory per context (0 = unlimited)"},
		"KERNELCORE_ACCELERATOR_MEMORY_LIMIT": {"KERNELCORE_ACCELERATOR_MEMORY_LIMIT", AcceleratorMemoryLimit(), "Memory of the mock accelerator in bytes (0 = unlimited)"},
		"KERNELCORE_PARALLEL_FILL":            {"KERNELCORE_PARALLEL_FILL", ParallelFill(true), "Fill large host buffers in parallel (default true)"},
	}
}

// Values returns all settings formatted as strings.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
