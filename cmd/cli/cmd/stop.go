package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var stopCmd = &cobra.Command{
	Use:   "stop [runtime_id]",
	Short: "Stop a runtime",
	Long:  `Stop the runtime with the given identifier. Only Docker container runtimes can be stopped; other backends report the operation as not implemented.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewRuntimeClient(viper.GetString("url"))

		if err := client.StopRuntime(args[0]); err != nil {
			cmd.Printf("Stop failed: %v\n", err)
			return
		}

		cmd.Printf("%s✓%s Stopped %s\n", colorGreen, colorReset, args[0])
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
