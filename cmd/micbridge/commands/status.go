package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/leandrodaf/micbridge/sdk/micbridge"
	"github.com/spf13/cobra"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the controlled microphones",
	Long: `Read the unit mode and the configuration of every controlled microphone and
print the device value, the slider position it maps to and the mute state.
No widget is changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(statusFormat); err != nil {
			return err
		}
		bridge, err := connect(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer bridge.Close()

		status, err := bridge.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		return writeStatus(cmd.OutOrStdout(), statusFormat, status)
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusFormat, "output", "o", string(formatYAML), "output format: yaml, json, table")
	rootCmd.AddCommand(statusCmd)
}

var (
	tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
	tableHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f")).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Padding(0, 1)
	tableMuted  = tableCell.Foreground(lipgloss.Color("#ff5f5f"))
)

const mutedColumn = 4

// statusTable renders the microphones as a bordered table.
func statusTable(status []micbridge.MicStatus) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers("MIC", "UNIT", "VALUE", "SLIDER", "MUTED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			if col == mutedColumn && row >= 0 && row < len(status) && status[row].Muted {
				return tableMuted
			}
			return tableCell
		})
	for _, m := range status {
		t.Row(
			strconv.Itoa(m.ID),
			string(m.Unit),
			fmt.Sprintf("%d/%d", m.Value, m.Max),
			strconv.Itoa(m.Slider),
			yesNo(m.Muted),
		)
	}
	return t.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
