package contracts

// PanelConfig describes the panel and button shown on the device.
type PanelConfig struct {
	ID   string `yaml:"id"`   // Base identifier for the panel and its widgets.
	Name string `yaml:"name"` // Name of the button and panel page.
	Icon string `yaml:"icon"` // One of the device's native icon names.
}

// EndpointConfig holds the connection settings for a device.
type EndpointConfig struct {
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`
	// Insecure skips TLS certificate verification. Devices ship with
	// self-signed certificates.
	Insecure bool `yaml:"insecure,omitempty"`
}

// BridgeOptions defines the configuration options for the mic bridge.
type BridgeOptions struct {
	Logger      Logger         // Logger for events and errors.
	LogLevel    LogLevel       // Level of logging to use.
	LogFilePath string         // File path for logging if file logging is enabled.
	Panel       PanelConfig    // Panel shown on the device.
	Microphones []int          // Controlled microphone channels, in panel order.
	Endpoint    EndpointConfig // Device connection, used by the dialing factory.
}

// Option is a function that modifies BridgeOptions.
type Option func(*BridgeOptions)

// WithLogger sets the logger for the bridge.
func WithLogger(l Logger) Option {
	return func(opts *BridgeOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the bridge.
func WithLogLevel(level LogLevel) Option {
	return func(opts *BridgeOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs bridge logs to a file.
func WithLogFile(path string) Option {
	return func(opts *BridgeOptions) {
		opts.LogFilePath = path
	}
}

// WithPanel sets the panel identity. Empty fields keep their defaults.
func WithPanel(panel PanelConfig) Option {
	return func(opts *BridgeOptions) {
		if panel.ID != "" {
			opts.Panel.ID = panel.ID
		}
		if panel.Name != "" {
			opts.Panel.Name = panel.Name
		}
		if panel.Icon != "" {
			opts.Panel.Icon = panel.Icon
		}
	}
}

// WithMicrophones sets the controlled microphone channels.
func WithMicrophones(ids ...int) Option {
	return func(opts *BridgeOptions) {
		opts.Microphones = append([]int(nil), ids...)
	}
}

// WithEndpoint sets the device connection settings.
func WithEndpoint(endpoint EndpointConfig) Option {
	return func(opts *BridgeOptions) {
		opts.Endpoint = endpoint
	}
}
