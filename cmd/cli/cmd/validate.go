package cmd

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runtimeplane/pkg/api"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate an executable as an AI runtime",
	Long:  `Check whether the file at the given path exists and responds to a version probe, and report the capabilities inferred from its name.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewRuntimeClient(viper.GetString("url"))

		var result api.ValidatePathResponse
		err := client.do(http.MethodPost, "/runtimes/validate",
			api.ValidatePathRequest{Path: args[0]}, &result)
		if err != nil {
			cmd.Printf("Validation failed: %v\n", err)
			return
		}

		if !result.Valid {
			cmd.Printf("%s✗%s %s is not a usable runtime\n", colorRed, colorReset, args[0])
			return
		}

		cmd.Printf("%s✓%s %s is a usable runtime\n", colorGreen, colorReset, args[0])
		if result.Version != "" {
			cmd.Printf("%sVersion:%s       %s\n", colorDim, colorReset, result.Version)
		}
		if len(result.Capabilities) > 0 {
			cmd.Printf("%sCapabilities:%s  %s\n", colorDim, colorReset, strings.Join(result.Capabilities, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
