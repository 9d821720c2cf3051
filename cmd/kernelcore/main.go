// Package main provides the kernelcore CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/born-ml/kernelcore/internal/envconfig"
)

const version = "v0.1.0-dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: envconfig.LogLevel()})))

	if err := NewCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
