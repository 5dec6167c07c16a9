package micbridge

import (
	"fmt"

	"github.com/leandrodaf/micbridge/internal/logger"
	"github.com/leandrodaf/micbridge/sdk/contracts"
)

// Defaults for a bridge configured without options.
const (
	DefaultPanelID   = "micController"
	DefaultPanelName = "Mic Controls"
	DefaultPanelIcon = "Microphone"
)

// DefaultMicrophones are the channels controlled when none are configured.
var DefaultMicrophones = []int{1, 2, 3, 4}

// applyDefaultOptions sets default values for BridgeOptions if not explicitly provided
// and validates the result.
func applyDefaultOptions(opts ...contracts.Option) (contracts.BridgeOptions, error) {
	options := &contracts.BridgeOptions{
		Panel: contracts.PanelConfig{
			ID:   DefaultPanelID,
			Name: DefaultPanelName,
			Icon: DefaultPanelIcon,
		},
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if len(options.Microphones) == 0 {
		options.Microphones = append([]int(nil), DefaultMicrophones...)
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		if err := options.Logger.SetDestination(contracts.FileLog, options.LogFilePath); err != nil {
			return contracts.BridgeOptions{}, err
		}
	}

	if err := validateOptions(options); err != nil {
		return contracts.BridgeOptions{}, err
	}
	return *options, nil
}

func validateOptions(options *contracts.BridgeOptions) error {
	if options.Panel.ID == "" {
		return fmt.Errorf("panel id must not be empty")
	}
	seen := make(map[int]bool, len(options.Microphones))
	for _, id := range options.Microphones {
		if id <= 0 {
			return fmt.Errorf("microphone %d: channel ids start at 1", id)
		}
		if seen[id] {
			return fmt.Errorf("microphone %d listed twice", id)
		}
		seen[id] = true
	}
	return nil
}
