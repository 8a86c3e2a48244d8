package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runtimeplane/pkg/api"
)

var (
	spawnToolID  string
	spawnWorkDir string
	spawnArgs    []string
)

var spawnCmd = &cobra.Command{
	Use:   "spawn",
	Short: "Register a tracked helper process",
	Long:  `Register a tracked process slot for a tool and print the handle. The handle is used with the input, kill, and logs commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		if spawnToolID == "" {
			cmd.Println("Tool ID is required. Set it using the --tool flag")
			return
		}

		client := NewRuntimeClient(viper.GetString("url"))

		resp, err := client.SpawnProcess(api.SpawnProcessRequest{
			ToolID:     spawnToolID,
			WorkingDir: spawnWorkDir,
			Args:       spawnArgs,
		})
		if err != nil {
			cmd.Printf("Spawn failed: %v\n", err)
			return
		}

		cmd.Printf("%s✓%s Registered %s (pid %d)\n", colorGreen, colorReset, spawnToolID, resp.PID)
	},
}

func init() {
	rootCmd.AddCommand(spawnCmd)
	spawnCmd.Flags().StringVar(&spawnToolID, "tool", "", "Tool identifier for the tracked process")
	spawnCmd.Flags().StringVar(&spawnWorkDir, "workdir", "", "Working directory for the tracked process")
	spawnCmd.Flags().StringSliceVar(&spawnArgs, "arg", nil, "Argument recorded for the tracked process (repeatable)")
}
