// Package logging adapts zap to the sensibo.Logger interface for the CLI.
package logging

import (
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// Log levels accepted by --log-level.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// defaultLevel is used for unknown level strings.
const defaultLevel = zapcore.InfoLevel

// Logger implements sensibo.Logger on top of a zap logger.
type Logger struct {
	zap *zap.Logger
}

var _ sensibo.Logger = (*Logger)(nil)

// New builds a console logger writing to stderr at the given level. Stdout
// is left to command output.
func New(level string) *Logger {
	return NewWithCore(newConsoleCore(ToZapLevel(level)))
}

// NewWithCore wraps an existing core.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{zap: zap.New(core)}
}

// ToZapLevel converts a textual level to a zapcore.Level.
func ToZapLevel(level string) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultLevel
	}
}

func newConsoleCore(level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)

	return zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(level))
}

// Debug implements sensibo.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.zap.Debug(msg, toZapFields(fields)...)
}

// Info implements sensibo.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.zap.Info(msg, toZapFields(fields)...)
}

// Warn implements sensibo.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.zap.Warn(msg, toZapFields(fields)...)
}

// Error implements sensibo.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.zap.Error(msg, toZapFields(fields)...)
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level zapcore.Level) bool {
	return l.zap.Core().Enabled(level)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// toZapFields converts fields in key order so output is stable.
func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	zapFields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		zapFields = append(zapFields, zap.Any(key, fields[key]))
	}

	return zapFields
}
