package commands

import (
	"context"
	"os"

	"github.com/leandrodaf/micbridge/internal/config"
	"github.com/leandrodaf/micbridge/sdk/contracts"
	"github.com/leandrodaf/micbridge/sdk/micbridge"
	"github.com/spf13/cobra"
)

// passwordEnv supplies the device password when neither the flag nor the
// file sets one.
const passwordEnv = "MICBRIDGE_PASSWORD"

var (
	configPath string

	host     string
	username string
	password string
	insecure bool
	panelID  string
	mics     []int
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "micbridge",
	Short: "Microphone gain and mute panel for collaboration devices",
	Long: `micbridge installs a panel on a collaboration device with a gain slider and a
mute button per microphone, and keeps the panel and the device configuration in sync.

Settings are read from ~/.micbridge/config.yaml (or --config) and can be
overridden with flags.

Examples:
  # Write a configuration file
  micbridge init --host 10.0.0.5 --user admin --insecure

  # Run the bridge until interrupted
  micbridge run

  # Show the controlled microphones as a table
  micbridge status -o table`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "configuration file (default ~/.micbridge/config.yaml)")
	flags.StringVar(&host, "host", "", "device host name, address or ws(s):// URL")
	flags.StringVarP(&username, "user", "u", "", "device user name")
	flags.StringVar(&password, "password", "", "device password (or "+passwordEnv+")")
	flags.BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")
	flags.StringVar(&panelID, "panel-id", "", "panel identifier")
	flags.IntSliceVar(&mics, "mics", nil, "controlled microphone channels")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
}

// loadConfig reads the configuration file and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Endpoint.Host = host
	}
	if flags.Changed("user") {
		cfg.Endpoint.Username = username
	}
	if flags.Changed("password") {
		cfg.Endpoint.Password = password
	}
	if cfg.Endpoint.Password == "" {
		cfg.Endpoint.Password = os.Getenv(passwordEnv)
	}
	if flags.Changed("insecure") {
		cfg.Endpoint.Insecure = insecure
	}
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
		return nil, err
	}
	return cfg, nil
}

// connect dials the configured device.
func connect(ctx context.Context, cmd *cobra.Command) (*micbridge.Bridge, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return micbridge.NewBridge(ctx, cfg.Options()...)
}

// defaultOptions returns the panel and microphones a bridge uses when the
// configuration leaves them out.
func defaultOptions() contracts.BridgeOptions {
	return contracts.BridgeOptions{
		Panel: contracts.PanelConfig{
			ID:   micbridge.DefaultPanelID,
			Name: micbridge.DefaultPanelName,
			Icon: micbridge.DefaultPanelIcon,
		},
		Microphones: append([]int(nil), micbridge.DefaultMicrophones...),
	}
}
