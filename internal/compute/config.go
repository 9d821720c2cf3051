package compute

import (
	"log/slog"

	"github.com/born-ml/kernelcore/internal/accel"
	"github.com/born-ml/kernelcore/internal/envconfig"
	"github.com/born-ml/kernelcore/internal/parallel"
)

// Config controls how a Context obtains memory.
type Config struct {
	// Accelerator acquires the accelerator on first use. nil means no accelerator.
	Accelerator accel.Opener

	// HostMemoryLimit caps the host bytes held by the context's buffers. 0 disables the cap.
	HostMemoryLimit int

	// Fill controls parallelism of host all-ones fills.
	Fill parallel.Config

	// Logger receives diagnostics. nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig builds a Config from the KERNELCORE_* environment variables.
func DefaultConfig() Config {
	open, err := accel.OpenerFor(envconfig.Accelerator(), int(envconfig.AcceleratorMemoryLimit()))
	if err != nil {
		slog.Warn("accelerator disabled", "error", err)
		open = accel.Unavailable
	}

	fill := parallel.DefaultConfig()
	fill.Enabled = fill.Enabled && envconfig.ParallelFill(true)

	return Config{
		Accelerator:     open,
		HostMemoryLimit: int(envconfig.HostMemoryLimit()),
		Fill:            fill,
	}
}
