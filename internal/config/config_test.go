package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/micbridge/sdk/contracts"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `endpoint:
  host: 10.0.0.5
  username: admin
  password: secret
  insecure: true
panel:
  id: roomA
  name: Room A Mics
microphones: [2, 1]
log:
  level: debug
  file: /tmp/micbridge.log
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wantEndpoint := contracts.EndpointConfig{Host: "10.0.0.5", Username: "admin", Password: "secret", Insecure: true}
	if cfg.Endpoint != wantEndpoint {
		t.Errorf("endpoint = %+v", cfg.Endpoint)
	}
	if cfg.Panel.ID != "roomA" || cfg.Panel.Name != "Room A Mics" || cfg.Panel.Icon != "" {
		t.Errorf("panel = %+v", cfg.Panel)
	}
	if len(cfg.Microphones) != 2 || cfg.Microphones[0] != 2 || cfg.Microphones[1] != 1 {
		t.Errorf("microphones = %v", cfg.Microphones)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/micbridge.log" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantInvalid bool
	}{
		{"malformed yaml", "endpoint: [unterminated", false},
		{"duplicate microphone", "microphones: [1, 2, 1]", true},
		{"zero microphone", "microphones: [0]", true},
		{"unknown log level", "log:\n  level: loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.wantInvalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v for %v", got, err)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault without a file: %v", err)
	}
	if cfg.Endpoint.Host != "" || len(cfg.Microphones) != 0 {
		t.Errorf("expected an empty config, got %+v", cfg)
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(home, ".micbridge", "config.yaml") {
		t.Errorf("DefaultPath = %q", path)
	}
	if err := Save(path, &Config{Endpoint: contracts.EndpointConfig{Host: "room.example.com"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cfg, err = LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.Endpoint.Host != "room.example.com" {
		t.Errorf("host = %q", cfg.Endpoint.Host)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &Config{
		Endpoint:    contracts.EndpointConfig{Host: "10.0.0.5", Username: "admin", Password: "secret"},
		Panel:       contracts.PanelConfig{ID: "micController", Name: "Mic Controls", Icon: "Microphone"},
		Microphones: []int{1, 3},
		Log:         LogConfig{Level: "warn"},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 600", perm)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Endpoint != in.Endpoint || out.Panel != in.Panel || out.Log != in.Log {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
	if len(out.Microphones) != 2 || out.Microphones[1] != 3 {
		t.Errorf("microphones = %v", out.Microphones)
	}
}

func TestOptions(t *testing.T) {
	cfg := &Config{
		Endpoint:    contracts.EndpointConfig{Host: "10.0.0.5"},
		Panel:       contracts.PanelConfig{Name: "Room A"},
		Microphones: []int{3},
		Log:         LogConfig{Level: "error", File: "/tmp/bridge.log"},
	}
	opts := contracts.BridgeOptions{Panel: contracts.PanelConfig{ID: "micController", Icon: "Microphone"}}
	for _, opt := range cfg.Options() {
		opt(&opts)
	}

	if opts.Endpoint.Host != "10.0.0.5" {
		t.Errorf("host = %q", opts.Endpoint.Host)
	}
	if opts.Panel.ID != "micController" || opts.Panel.Name != "Room A" || opts.Panel.Icon != "Microphone" {
		t.Errorf("panel = %+v", opts.Panel)
	}
	if len(opts.Microphones) != 1 || opts.Microphones[0] != 3 {
		t.Errorf("microphones = %v", opts.Microphones)
	}
	if opts.LogLevel != contracts.ErrorLevel || opts.LogFilePath != "/tmp/bridge.log" {
		t.Errorf("log = %v %q", opts.LogLevel, opts.LogFilePath)
	}
}

func TestOptions_EmptyKeepsDefaults(t *testing.T) {
	opts := contracts.BridgeOptions{Microphones: []int{1, 2, 3, 4}}
	for _, opt := range (&Config{}).Options() {
		opt(&opts)
	}
	if len(opts.Microphones) != 4 {
		t.Errorf("microphones = %v, want defaults kept", opts.Microphones)
	}
	if opts.LogLevel != contracts.InfoLevel || opts.LogFilePath != "" {
		t.Errorf("log = %v %q", opts.LogLevel, opts.LogFilePath)
	}
}
