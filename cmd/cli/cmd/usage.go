package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var usageCmd = &cobra.Command{
	Use:   "usage [runtime_id]",
	Short: "Snapshot resource usage of a runtime",
	Long:  `Report the runtime's current memory footprint in megabytes and CPU utilization. Backends without a measurable footprint report zeros.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewRuntimeClient(viper.GetString("url"))

		usage, err := client.GetUsage(args[0])
		if err != nil {
			cmd.Printf("Usage check failed: %v\n", err)
			return
		}

		cmd.Printf("%sResource Usage%s\n", colorBold, colorReset)
		cmd.Println("──────────────────────────────")
		cmd.Printf("%sID:%s       %s\n", colorDim, colorReset, args[0])
		cmd.Printf("%sMemory:%s   %.1f MB\n", colorDim, colorReset, usage.MemoryMB)
		cmd.Printf("%sCPU:%s      %.1f%%\n", colorDim, colorReset, usage.CPUPercent)
		if usage.VRAMMB != nil {
			cmd.Printf("%sVRAM:%s     %.1f MB\n", colorDim, colorReset, *usage.VRAMMB)
		}
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
}
