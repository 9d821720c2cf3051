package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCLI()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "kernelcore "+version+"\n", run(t, "version"))
}

func TestEnv(t *testing.T) {
	t.Setenv("KERNELCORE_ACCELERATOR", "mock")
	out := run(t, "env")

	assert.Contains(t, out, "KERNELCORE_ACCELERATOR")
	assert.Contains(t, out, "mock")
	assert.Contains(t, out, "KERNELCORE_HOST_MEMORY_LIMIT")
}

func TestProbeMock(t *testing.T) {
	out := run(t, "probe", "--accelerator", "mock", "--size", "4096")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "host")
	assert.Contains(t, lines[1], "Success")
	assert.Contains(t, lines[2], "accelerator")
	assert.Contains(t, lines[2], "mock")
	assert.Contains(t, lines[2], "4096")
}

func TestProbeNoAccelerator(t *testing.T) {
	out := run(t, "probe", "--accelerator", "none", "--size", "64")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "AcceleratorRuntime")
}

func TestProbeHostLimit(t *testing.T) {
	t.Setenv("KERNELCORE_HOST_MEMORY_LIMIT", "1024")
	out := run(t, "probe", "--accelerator", "none", "--size", "4096")

	assert.Contains(t, out, "OutOfMemory")
}

func TestProbeUnknownAccelerator(t *testing.T) {
	cmd := NewCLI()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"probe", "--accelerator", "tpu"})
	assert.Error(t, cmd.Execute())
}
