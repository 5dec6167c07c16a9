package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leandrodaf/micbridge/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLoggerFrom(zap.New(core)), logs
}

func TestZapLogger_Fields(t *testing.T) {
	l, logs := newObserved()

	l.Info("widget set",
		l.Field().String("widget", "micController-gain-1"),
		l.Field().Int("value", 128),
		l.Field().Bool("muted", false),
		l.Field().Error("error", errors.New("boom")),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["widget"] != "micController-gain-1" {
		t.Errorf("widget = %v", ctx["widget"])
	}
	if ctx["value"] != int64(128) {
		t.Errorf("value = %v (%T)", ctx["value"], ctx["value"])
	}
	if ctx["muted"] != false {
		t.Errorf("muted = %v", ctx["muted"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("error = %v", ctx["error"])
	}
}

func TestZapLogger_EmptyFieldIgnored(t *testing.T) {
	l, logs := newObserved()
	l.Warn("no fields", l.Field())

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if n := len(entries[0].Context); n != 0 {
		t.Errorf("context has %d fields, want 0", n)
	}
}

func TestZapLogger_SetLevel(t *testing.T) {
	tests := []struct {
		level contracts.LogLevel
		want  []string
	}{
		{contracts.DebugLevel, []string{"debug", "info", "warn", "error"}},
		{contracts.InfoLevel, []string{"info", "warn", "error"}},
		{contracts.WarnLevel, []string{"warn", "error"}},
		{contracts.ErrorLevel, []string{"error"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			l, logs := newObserved()
			l.SetLevel(tt.level)

			l.Debug("debug")
			l.Info("info")
			l.Warn("warn")
			l.Error("error")

			var got []string
			for _, e := range logs.All() {
				got = append(got, e.Message)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("logged %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZapLogger_SetDestinationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	l := NewZapLogger().(*ZapLogger)
	if err := l.SetDestination(contracts.FileLog, path); err != nil {
		t.Fatalf("SetDestination: %v", err)
	}
	l.Info("panel saved", l.Field().String("panel", "micController"))
	if err := l.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"panel":"micController"`) {
		t.Errorf("log file missing field: %s", data)
	}
}

func TestZapLogger_SetDestinationErrors(t *testing.T) {
	l := NewZapLogger()
	if err := l.SetDestination(contracts.FileLog); err == nil {
		t.Error("file destination without path should fail")
	}
	if err := l.SetDestination("syslog"); err == nil {
		t.Error("unknown destination should fail")
	}
}
