package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var restartCmd = &cobra.Command{
	Use:   "restart [runtime_id]",
	Short: "Restart a runtime",
	Long:  `Stop and start the runtime with the given identifier. A failed stop phase is tolerated; the runtime is started again either way.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewRuntimeClient(viper.GetString("url"))

		resp, err := client.RestartRuntime(args[0])
		if err != nil {
			cmd.Printf("Restart failed: %v\n", err)
			return
		}

		cmd.Printf("%s✓%s Restarted %s (pid %d)\n", colorGreen, colorReset, args[0], resp.PID)
	},
}

func init() {
	rootCmd.AddCommand(restartCmd)
}
