package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel defines the fallback log level when an unknown level string is provided.
const defaultZapLevel = zapcore.DebugLevel

// toZapLevel converts a textual level to zapcore.Level using known level constants.
func toZapLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newConsoleCore builds a zapcore.Core with a console encoder targeting w.
func newConsoleCore(level zapcore.Level, w io.Writer) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(zapcore.AddSync(w)) // thread-safe writer
	return zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(level))
}

// New builds a standalone logger writing to w. Most code should use Get.
func New(levelStr string, w io.Writer) *Logger {
	core := newConsoleCore(toZapLevel(levelStr), w)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// newZapLogger constructs a sugared zap logger on stdout with the provided level string.
func newZapLogger(levelStr string) *Logger {
	return New(levelStr, os.Stdout)
}
