// Package logger configures the process-wide zap logger for taskboard.
//
// The dashboard owns the terminal while it runs, so interactive sessions log to a
// rotating file. One-shot commands may log to stderr instead.
package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger *zap.Logger
	mu           sync.RWMutex
)

// Config defines logger configuration.
type Config struct {
	Level string // "debug", "info", "warn", "error"
	// Filename enables JSON logging to a rotated file when set.
	Filename   string
	MaxSize    int  // megabytes before rotation
	MaxBackups int  // rotated files to keep
	MaxAge     int  // days to keep rotated files
	Compress   bool // gzip rotated files
	// Console logs human-readable lines to stderr when Filename is empty.
	Console bool
}

// DefaultConfig returns a file logger under the system temp directory.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Filename:   filepath.Join(os.TempDir(), "taskboard", "taskboard.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// New builds a logger from cfg without installing it globally.
func New(cfg *Config) (*zap.Logger, error) {
	level := parseLogLevel(cfg.Level)

	switch {
	case cfg.Filename != "":
		return newFileLogger(cfg, level)
	case cfg.Console:
		return newConsoleLogger(level)
	default:
		return zap.NewNop(), nil
	}
}

// Init builds a logger from cfg and installs it as the global logger.
func Init(cfg *Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	globalLogger = l
	mu.Unlock()
	return nil
}

// newFileLogger writes JSON lines to a lumberjack-rotated file.
func newFileLogger(cfg *Config, level zapcore.Level) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o750); err != nil {
		return nil, err
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(writer), level)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", "taskboard")),
	), nil
}

// newConsoleLogger writes colored lines to stderr.
func newConsoleLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}

	return config.Build()
}

// parseLogLevel converts string log level to zapcore.Level.
func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the global logger, or a no-op logger before Init.
func Get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger != nil {
		return globalLogger
	}
	return zap.NewNop()
}

// Named returns a named child of the global logger.
func Named(name string) *zap.Logger {
	return Get().Named(name)
}

// Sync flushes any buffered log entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// reset drops the global logger. Used by tests.
func reset() {
	mu.Lock()
	globalLogger = nil
	mu.Unlock()
}
