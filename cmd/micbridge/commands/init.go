package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/leandrodaf/micbridge/internal/config"
	"github.com/leandrodaf/micbridge/sdk/contracts"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file",
	Long: `Write the configuration file with the bridge defaults and the values given
by flags. An existing file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		defaults := defaultOptions()
		cfg := &config.Config{
			Endpoint: contracts.EndpointConfig{
				Host:     host,
				Username: username,
				Password: password,
				Insecure: insecure,
			},
			Panel:       defaults.Panel,
			Microphones: defaults.Microphones,
			Log:         config.LogConfig{Level: contracts.InfoLevel.String()},
		}
		flags := cmd.Flags()
		if flags.Changed("panel-id") {
			cfg.Panel.ID = panelID
		}
		if flags.Changed("mics") {
			cfg.Microphones = append([]int(nil), mics...)
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if flags.Changed("log-file") {
			cfg.Log.File = logFile
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}
