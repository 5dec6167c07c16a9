package commands

import (
	"github.com/leandrodaf/micbridge/sdk/micbridge"
	"github.com/spf13/cobra"
)

var (
	panelTeams bool
	panelOrder int
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Print the panel document",
	Long: `Print the panel XML that run saves on the device, built from the
configuration without connecting. Use --teams and --order to render what a
Teams device or an already installed panel would get.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := defaultOptions()
		for _, opt := range cfg.Options() {
			opt(&opts)
		}

		spec := micbridge.PanelSpec{
			Panel:       opts.Panel,
			Microphones: opts.Microphones,
			Location:    micbridge.LocationHomeScreen,
		}
		if panelTeams {
			spec.Location = micbridge.LocationControlPanel
		}
		if cmd.Flags().Changed("order") {
			order := panelOrder
			spec.Order = &order
		}

		body, err := micbridge.BuildPanel(spec)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if _, err := out.Write(body); err != nil {
			return err
		}
		_, err = out.Write([]byte("\n"))
		return err
	},
}

func init() {
	panelCmd.Flags().BoolVar(&panelTeams, "teams", false, "place the panel as on a Teams device")
	panelCmd.Flags().IntVar(&panelOrder, "order", 0, "panel order to keep")
	rootCmd.AddCommand(panelCmd)
}
