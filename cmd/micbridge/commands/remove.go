package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the panel from the device",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bridge, err := connect(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer bridge.Close()

		if err := bridge.RemovePanel(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ panel removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
