package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runtimeplane/pkg/api"
)

var statusCmd = &cobra.Command{
	Use:   "status [runtime_id]",
	Short: "Get status of a runtime",
	Long:  `Probe the runtime with the given identifier and report its current state (running, stopped, error), version, port, and any error message from the probe.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewRuntimeClient(viper.GetString("url"))

		status, err := client.GetStatus(args[0])
		if err != nil {
			cmd.Printf("Status check failed: %v\n", err)
			return
		}

		printStatus(cmd, args[0], status)
	},
}

func printStatus(cmd *cobra.Command, id string, status *api.StatusResponse) {
	icon := statusIcon(status.Status)
	cmd.Printf("%s %sRuntime Status%s\n", icon, colorBold, colorReset)
	cmd.Println("──────────────────────────────")

	cmd.Printf("%sID:%s       %s\n", colorDim, colorReset, id)
	cmd.Printf("%sStatus:%s   %s\n", colorDim, colorReset, colorizeStatus(status.Status))

	if status.Version != "" {
		cmd.Printf("%sVersion:%s  %s\n", colorDim, colorReset, status.Version)
	}
	if status.Port != 0 {
		cmd.Printf("%sPort:%s     %d\n", colorDim, colorReset, status.Port)
	}
	if status.Error != "" {
		cmd.Printf("%sError:%s    %s%s%s\n", colorDim, colorReset, colorRed, status.Error, colorReset)
	}
}

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
)

func statusIcon(status string) string {
	switch status {
	case "running":
		return colorGreen + "✓" + colorReset
	case "stopped":
		return colorCyan + "◯" + colorReset
	case "error":
		return colorRed + "✗" + colorReset
	default:
		return "•"
	}
}

func colorizeStatus(status string) string {
	icon := statusIcon(status)
	switch status {
	case "running":
		return icon + " " + colorGreen + status + colorReset
	case "stopped":
		return icon + " " + colorCyan + status + colorReset
	case "error":
		return icon + " " + colorRed + status + colorReset
	default:
		return status
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
