package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Install the panel and keep it in sync with the device",
	Long: `Connect to the device, save the panel, align every widget with the current
microphone configuration, and apply panel interactions until interrupted or
the connection drops.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bridge, err := connect(ctx, cmd)
		if err != nil {
			return err
		}
		defer bridge.Close()

		return bridge.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
