// Package config loads the bridge configuration file.
//
// The file is YAML:
//
//	endpoint:
//	  host: 10.0.0.5
//	  username: admin
//	  password: secret
//	  insecure: true
//	panel:
//	  id: micController
//	  name: Mic Controls
//	  icon: Microphone
//	microphones: [1, 2, 3, 4]
//	log:
//	  level: info
//	  file: /var/log/micbridge.log
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/leandrodaf/micbridge/sdk/contracts"
)

const (
	dirName  = ".micbridge"
	fileName = "config.yaml"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the content of the configuration file. Zero fields keep the
// bridge defaults.
type Config struct {
	Endpoint    contracts.EndpointConfig `yaml:"endpoint"`
	Panel       contracts.PanelConfig    `yaml:"panel,omitempty"`
	Microphones []int                    `yaml:"microphones,omitempty"`
	Log         LogConfig                `yaml:"log,omitempty"`
}

// LogConfig selects the log level and an optional log file.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// DefaultPath returns ~/.micbridge/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads the file at DefaultPath. A missing file yields an
// empty configuration.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Save writes cfg to path, creating the directory. The file may hold the
// device password, so it is only readable by the owner.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Validate checks the values that the bridge would otherwise reject later.
func (c *Config) Validate() error {
	seen := make(map[int]bool, len(c.Microphones))
	for _, id := range c.Microphones {
		if id <= 0 {
			return fmt.Errorf("%w: microphone %d: channel ids start at 1", ErrInvalid, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: microphone %d listed twice", ErrInvalid, id)
		}
		seen[id] = true
	}
	if _, err := contracts.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Options converts the configuration into bridge options.
func (c *Config) Options() []contracts.Option {
	level, _ := contracts.ParseLogLevel(c.Log.Level)
	opts := []contracts.Option{
		contracts.WithEndpoint(c.Endpoint),
		contracts.WithPanel(c.Panel),
		contracts.WithLogLevel(level),
	}
	if len(c.Microphones) > 0 {
		opts = append(opts, contracts.WithMicrophones(c.Microphones...))
	}
	if c.Log.File != "" {
		opts = append(opts, contracts.WithLogFile(c.Log.File))
	}
	return opts
}
