package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runtimeplane/pkg/api"
)

var inputCmd = &cobra.Command{
	Use:   "input [pid] [text]",
	Short: "Send input to a tracked process",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		pid, err := strconv.Atoi(args[0])
		if err != nil {
			cmd.Printf("Invalid pid: %s\n", args[0])
			return
		}

		client := NewRuntimeClient(viper.GetString("url"))

		err = client.do(http.MethodPost, fmt.Sprintf("/processes/%d/input", pid),
			api.SendInputRequest{Input: args[1]}, nil)
		if err != nil {
			cmd.Printf("Send input failed: %v\n", err)
			return
		}

		cmd.Printf("%s✓%s Sent input to pid %d\n", colorGreen, colorReset, pid)
	},
}

func init() {
	rootCmd.AddCommand(inputCmd)
}
