package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var killCmd = &cobra.Command{
	Use:   "kill [pid]",
	Short: "Kill a tracked process",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pid, err := strconv.Atoi(args[0])
		if err != nil {
			cmd.Printf("Invalid pid: %s\n", args[0])
			return
		}

		client := NewRuntimeClient(viper.GetString("url"))

		if err := client.do(http.MethodDelete, fmt.Sprintf("/processes/%d", pid), nil, nil); err != nil {
			cmd.Printf("Kill failed: %v\n", err)
			return
		}

		cmd.Printf("%s✓%s Killed pid %d\n", colorGreen, colorReset, pid)
	},
}

func init() {
	rootCmd.AddCommand(killCmd)
}
