package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/kernelcore/internal/accel"
	"github.com/born-ml/kernelcore/internal/compute"
	"github.com/born-ml/kernelcore/internal/envconfig"
	"github.com/born-ml/kernelcore/internal/errcode"
	"github.com/born-ml/kernelcore/internal/tensor"
)

// NewCLI creates the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "kernelcore",
		Short:         "Inspect the kernelcore runtime",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.AddCommand(newVersionCmd(), newEnvCmd(), newProbeCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("kernelcore %s\n", version)
		},
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List configuration variables and their values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := envconfig.AsMap()
			names := make([]string, 0, len(vars))
			for name := range vars {
				names = append(names, name)
			}
			sort.Strings(names)

			data := make([][]string, 0, len(names))
			for _, name := range names {
				v := vars[name]
				data = append(data, []string{v.Name, fmt.Sprintf("%v", v.Value), v.Description})
			}
			renderTable(cmd.OutOrStdout(), []string{"NAME", "VALUE", "DESCRIPTION"}, data)
			return nil
		},
	}
}

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Allocate and fill buffers on each device and report the result",
		Args:  cobra.NoArgs,
		RunE:  probeHandler,
	}
	cmd.Flags().String("accelerator", "", "Accelerator to probe: auto, webgpu, mock or none (default from KERNELCORE_ACCELERATOR)")
	cmd.Flags().Int("size", 1<<20, "Workspace bytes to request per device")
	return cmd
}

func probeHandler(cmd *cobra.Command, _ []string) error {
	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("invalid size %d", size)
	}

	cfg := compute.DefaultConfig()
	if name, _ := cmd.Flags().GetString("accelerator"); name != "" {
		open, err := accel.OpenerFor(name, int(envconfig.AcceleratorMemoryLimit()))
		if err != nil {
			return err
		}
		cfg.Accelerator = open
	}

	ctx := compute.New(cfg)
	defer ctx.Close()

	var data [][]string
	for _, device := range []tensor.DeviceType{tensor.Host, tensor.Accelerator} {
		data = append(data, probeDevice(ctx, device, size))
	}
	renderTable(cmd.OutOrStdout(), []string{"DEVICE", "NAME", "STATUS", "WORKSPACE", "ALL-ONES", "REALLOCATIONS", "ERROR"}, data)
	return nil
}

// probeDevice requests a workspace and a float all-ones vector of the same
// byte size on device and summarizes the outcome as a table row.
func probeDevice(ctx *compute.Context, device tensor.DeviceType, size int) []string {
	ctx.ResetLastError()

	name := "cpu"
	if device == tensor.Accelerator {
		name = "-"
		if dev, err := ctx.Accelerator(); err == nil {
			name = dev.Name()
		}
	}
	if ctx.LastError() == errcode.Success {
		if _, err := ctx.Workspace(device, size); err == nil {
			ctx.AllOnes(device, tensor.Float, size/tensor.Float.Size()) //nolint:errcheck
		}
	}

	s := ctx.Stats()[device]
	return []string{
		device.String(),
		name,
		ctx.LastError().String(),
		strconv.Itoa(s.WorkspaceBytes),
		strconv.Itoa(s.AllOnesElements),
		strconv.Itoa(s.WorkspaceReallocations + s.AllOnesReallocations),
		ctx.LastErrorMessage(),
	}
}

func renderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
}
