package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/leandrodaf/micbridge/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of zap.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger creates a production zap logger writing JSON to stderr.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, err := newConfig(level, "stderr").Build(zap.AddCallerSkip(1))
	if err != nil {
		// Only reachable with a broken encoder config.
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger, level: level}
}

// NewZapLoggerFrom wraps an existing zap logger. Level filtering is applied
// on top of whatever the wrapped core enables.
func NewZapLoggerFrom(l *zap.Logger) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	core := l.Core()
	wrapped := zap.New(&levelCore{Core: core, level: level}, zap.AddCaller(), zap.AddCallerSkip(1))
	return &ZapLogger{logger: wrapped, level: level}
}

func newConfig(level zap.AtomicLevel, output string) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return cfg
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.logger.Info(msg, toZap(fields)...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.logger.Error(msg, toZap(fields)...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.logger.Debug(msg, toZap(fields)...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.logger.Warn(msg, toZap(fields)...)
}

// Fatal logs a message at the FATAL level and terminates the process.
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.logger.Fatal(msg, toZap(fields)...)
}

// Field returns an empty field to be filled by one of its setters.
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the minimum level that is written.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(zapLevel(level))
}

func zapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetDestination rebuilds the logger so it writes to stderr or to a file.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) error {
	output := "stderr"
	switch dest {
	case contracts.ConsoleLog:
	case contracts.FileLog:
		if len(filePath) == 0 || filePath[0] == "" {
			return fmt.Errorf("file destination requires a path")
		}
		f, err := os.OpenFile(filePath[0], os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		f.Close()
		output = filePath[0]
	default:
		return fmt.Errorf("unknown log destination %q", dest)
	}

	logger, err := newConfig(z.level, output).Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	_ = z.logger.Sync()
	z.logger = logger
	return nil
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}

// levelCore applies the wrapper's atomic level to a borrowed core.
type levelCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *levelCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l) && c.Core.Enabled(l)
}

func (c *levelCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}

func toZap(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok && f.key != "" {
			out = append(out, f.field)
		}
	}
	return out
}

// zapField implements contracts.Field
type zapField struct {
	key   string
	field zap.Field
}

func (f *zapField) Bool(key string, val bool) contracts.Field {
	return &zapField{key, zap.Bool(key, val)}
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return &zapField{key, zap.Int(key, val)}
}

func (f *zapField) Float64(key string, val float64) contracts.Field {
	return &zapField{key, zap.Float64(key, val)}
}

func (f *zapField) String(key string, val string) contracts.Field {
	return &zapField{key, zap.String(key, val)}
}

func (f *zapField) Time(key string, val time.Time) contracts.Field {
	return &zapField{key, zap.Time(key, val)}
}

func (f *zapField) Int64(key string, val int64) contracts.Field {
	return &zapField{key, zap.Int64(key, val)}
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return &zapField{key, zap.NamedError(key, val)}
}

func (f *zapField) Uint64(key string, val uint64) contracts.Field {
	return &zapField{key, zap.Uint64(key, val)}
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return &zapField{key, zap.Uint8(key, val)}
}
