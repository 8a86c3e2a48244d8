package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "runtimectl",
	Short: "Runtimectl is a command line tool for managing local AI runtimes",
	Long: `runtimectl is the command-line interface for the RuntimePlane local control plane.

RuntimePlane discovers AI runtime backends installed on the host (Ollama,
LocalAI, Python, Node.js, Docker containers running AI service images) and
manages their lifecycle: start, stop, restart, status probes, and resource
usage snapshots. It also tracks helper processes and their captured output.

Common workflows:

  Detect installed runtimes:
    runtimectl detect

  Start a runtime by its identifier:
    runtimectl start ollama_ollama

  Check whether a runtime is serving:
    runtimectl status ollama_ollama

  Snapshot memory and CPU usage:
    runtimectl usage docker_a1b2c3

  Register a tracked helper process:
    runtimectl spawn --tool code-indexer --workdir /work

  Print or follow a tracked process's output:
    runtimectl logs 90210 --follow

Configuration:
  Set the daemon endpoint via an environment variable or a config file:
    RUNTIMEPLANE_URL    Daemon endpoint (default: http://localhost:7677)`,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".runtimectl"
		viper.AddConfigPath(home)
		viper.SetConfigName(".runtimectl")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "RUNTIMEPLANE_VARNAME"
	viper.SetEnvPrefix("RUNTIMEPLANE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.runtimectl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:7677", "RuntimePlane daemon URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
}
