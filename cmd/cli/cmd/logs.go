package cmd

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var follow bool

var logsCmd = &cobra.Command{
	Use:   "logs [pid]",
	Short: "Print captured output of a tracked process",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pid, err := strconv.Atoi(args[0])
		if err != nil {
			cmd.Printf("Invalid pid: %s\n", args[0])
			return
		}

		client := NewRuntimeClient(viper.GetString("url"))

		if !follow {
			output, err := client.GetOutput(pid)
			if err != nil {
				cmd.Printf("Error fetching output: %v\n", err)
				return
			}
			cmd.Print(output)
			return
		}

		// Trap Ctrl+C to exit gracefully
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-sigChan
			os.Exit(0)
		}()

		printed := 0
		for {
			lines, err := client.StreamOutput(pid)
			if err != nil {
				cmd.Printf("Error fetching output: %v\n", err)
				time.Sleep(2 * time.Second) // Retry backoff
				continue
			}

			// The stream endpoint returns the full line list every time;
			// print only what is new since the last poll.
			for ; printed < len(lines); printed++ {
				cmd.Println(lines[printed])
			}

			time.Sleep(1 * time.Second)
		}
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow output")
}
