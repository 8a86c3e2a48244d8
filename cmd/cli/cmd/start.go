package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runtimeplane/pkg/api"
)

var (
	startExecutable string
	startWorkDir    string
	startArgs       []string
)

var startCmd = &cobra.Command{
	Use:   "start [runtime_id]",
	Short: "Start a runtime",
	Long: `Start the runtime with the given identifier. Service runtimes like
Ollama and LocalAI are launched from their detected executables and need no
further flags. Generic runtimes require --exe pointing at the binary to run.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewRuntimeClient(viper.GetString("url"))

		var req *api.StartRuntimeRequest
		if startExecutable != "" || startWorkDir != "" || len(startArgs) > 0 {
			req = &api.StartRuntimeRequest{
				ExecutablePath: startExecutable,
				Args:           startArgs,
				WorkingDir:     startWorkDir,
			}
		}

		resp, err := client.StartRuntime(args[0], req)
		if err != nil {
			cmd.Printf("Start failed: %v\n", err)
			return
		}

		cmd.Printf("%s✓%s Started %s (pid %d)\n", colorGreen, colorReset, args[0], resp.PID)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVar(&startExecutable, "exe", "", "Executable path for generic runtimes")
	startCmd.Flags().StringVar(&startWorkDir, "workdir", "", "Working directory for the launched process")
	startCmd.Flags().StringSliceVar(&startArgs, "arg", nil, "Argument to pass to the executable (repeatable)")
}
