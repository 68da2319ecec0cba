// Package logger provides structured logging for all pipeline components.
package logger

import (
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger defines the logging interface used across the codebase.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
	Sync() error
}

type zapLogger struct {
	logger *zap.Logger
}

// New creates a production logger writing JSON to stdout at the given level.
// Unknown levels fall back to info.
func New(level string) Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapLevel,
	)

	return &zapLogger{logger: zap.New(core)}
}

// NewZapAdapter wraps an existing zap.Logger in the Logger interface.
func NewZapAdapter(l *zap.Logger) Logger {
	return &zapLogger{logger: l}
}

func (z *zapLogger) Debug(msg string, fields map[string]interface{}) {
	z.logger.Debug(msg, mapToZapFields(fields)...)
}

func (z *zapLogger) Info(msg string, fields map[string]interface{}) {
	z.logger.Info(msg, mapToZapFields(fields)...)
}

func (z *zapLogger) Warn(msg string, fields map[string]interface{}) {
	z.logger.Warn(msg, mapToZapFields(fields)...)
}

func (z *zapLogger) Error(msg string, fields map[string]interface{}) {
	z.logger.Error(msg, mapToZapFields(fields)...)
}

func (z *zapLogger) With(fields map[string]interface{}) Logger {
	return &zapLogger{logger: z.logger.With(mapToZapFields(fields)...)}
}

func (z *zapLogger) Sync() error {
	return z.logger.Sync()
}

func mapToZapFields(fields map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

// NewTestLogger creates a logger that writes through the test harness.
func NewTestLogger(t *testing.T) Logger {
	return &zapLogger{logger: zaptest.NewLogger(t)}
}

// NewNoOpLogger discards all output.
func NewNoOpLogger() Logger {
	return &zapLogger{logger: zap.NewNop()}
}
