package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect AI runtimes installed on the host",
	Long:  `Run a detection pass over the host PATH and the Docker daemon and list every AI runtime found: Ollama, LocalAI, Python, Node.js, Docker, and containers running known AI service images.`,
	Run: func(cmd *cobra.Command, args []string) {
		client := NewRuntimeClient(viper.GetString("url"))

		runtimes, err := client.DetectRuntimes()
		if err != nil {
			cmd.Printf("Detection failed: %v\n", err)
			return
		}

		if len(runtimes) == 0 {
			cmd.Println("No runtimes detected")
			return
		}

		cmd.Printf("%sDetected Runtimes%s\n", colorBold, colorReset)
		cmd.Println("──────────────────────────────")
		for _, rt := range runtimes {
			cmd.Printf("%s%s%s (%s)\n", colorBold, rt.Name, colorReset, rt.ID)
			cmd.Printf("  %sType:%s       %s\n", colorDim, colorReset, rt.RuntimeType)
			if rt.Version != "" {
				cmd.Printf("  %sVersion:%s    %s\n", colorDim, colorReset, rt.Version)
			}
			cmd.Printf("  %sPath:%s       %s\n", colorDim, colorReset, rt.ExecutablePath)
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
