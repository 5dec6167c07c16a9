package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/leandrodaf/micbridge/sdk/micbridge"
)

// outputFormat is the output format of status.
type outputFormat string

const (
	formatYAML  outputFormat = "yaml"
	formatJSON  outputFormat = "json"
	formatTable outputFormat = "table"
)

func checkFormat(format string) error {
	switch outputFormat(format) {
	case formatYAML, formatJSON, formatTable, "":
		return nil
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

func writeStatus(w io.Writer, format string, status []micbridge.MicStatus) error {
	switch outputFormat(format) {
	case formatYAML, "":
		data, err := yaml.Marshal(status)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	case formatTable:
		_, err := fmt.Fprintln(w, statusTable(status))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
