package micbridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/micbridge/internal/logger"
	"github.com/leandrodaf/micbridge/sdk/contracts"
	"go.uber.org/zap"
)

func TestApplyDefaultOptions_Defaults(t *testing.T) {
	opts, err := applyDefaultOptions(contracts.WithLogger(logger.NewZapLoggerFrom(zap.NewNop())))
	if err != nil {
		t.Fatalf("applyDefaultOptions: %v", err)
	}
	want := contracts.PanelConfig{ID: DefaultPanelID, Name: DefaultPanelName, Icon: DefaultPanelIcon}
	if opts.Panel != want {
		t.Errorf("panel = %+v, want %+v", opts.Panel, want)
	}
	if len(opts.Microphones) != 4 {
		t.Errorf("microphones = %v, want 1..4", opts.Microphones)
	}
	if opts.Logger == nil {
		t.Error("logger not set")
	}
}

func TestApplyDefaultOptions_DefaultLogger(t *testing.T) {
	opts, err := applyDefaultOptions()
	if err != nil {
		t.Fatalf("applyDefaultOptions: %v", err)
	}
	if _, ok := opts.Logger.(*logger.ZapLogger); !ok {
		t.Errorf("default logger is %T", opts.Logger)
	}
}

func TestApplyDefaultOptions_DoesNotShareDefaultMicrophones(t *testing.T) {
	opts, err := applyDefaultOptions(contracts.WithLogger(logger.NewZapLoggerFrom(zap.NewNop())))
	if err != nil {
		t.Fatal(err)
	}
	opts.Microphones[0] = 42
	if DefaultMicrophones[0] != 1 {
		t.Errorf("DefaultMicrophones modified through options: %v", DefaultMicrophones)
	}
}

func TestApplyDefaultOptions_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")
	l := logger.NewZapLoggerFrom(zap.NewNop())
	if _, err := applyDefaultOptions(contracts.WithLogger(l), contracts.WithLogFile(path)); err != nil {
		t.Fatalf("applyDefaultOptions: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}

	bad := filepath.Join(t.TempDir(), "missing", "bridge.log")
	if _, err := applyDefaultOptions(contracts.WithLogger(l), contracts.WithLogFile(bad)); err == nil {
		t.Error("expected an error for an unwritable log file")
	}
}

func TestApplyDefaultOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opt  contracts.Option
	}{
		{"zero channel", contracts.WithMicrophones(0, 1)},
		{"negative channel", contracts.WithMicrophones(-2)},
		{"duplicate channel", contracts.WithMicrophones(1, 2, 1)},
		{"empty panel id", func(o *contracts.BridgeOptions) { o.Panel.ID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyDefaultOptions(contracts.WithLogger(logger.NewZapLoggerFrom(zap.NewNop())), tt.opt)
			if err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
