// Package observability provides the process-wide structured logger.
// All packages log through the printf-style helpers below; the backend is
// zap, configured once at startup via InitLoggerFromEnv.
package observability

import (
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar atomic.Pointer[zap.SugaredLogger]

func init() {
	// Safe default so logging works before InitLoggerFromEnv runs (e.g. in
	// tests). Errors only, to keep test output quiet.
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}
	sugar.Store(logger.Sugar())
}

// InitLoggerFromEnv configures the global logger from the environment:
//
//	LOG_LEVEL: debug | info | warn | error (default info)
//	LOG_FORMAT: json | console (default console)
func InitLoggerFromEnv() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = zapcore.DebugLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	sugar.Store(logger.Sugar())
	return logger, nil
}

// SetLogger replaces the global logger. Intended for tests.
func SetLogger(logger *zap.Logger) {
	sugar.Store(logger.Sugar())
}

// Debugf logs at debug level.
func Debugf(format string, args ...interface{}) { sugar.Load().Debugf(format, args...) }

// Infof logs at info level.
func Infof(format string, args ...interface{}) { sugar.Load().Infof(format, args...) }

// Warnf logs at warn level.
func Warnf(format string, args ...interface{}) { sugar.Load().Warnf(format, args...) }

// Errorf logs at error level.
func Errorf(format string, args ...interface{}) { sugar.Load().Errorf(format, args...) }

// Fatalf logs at fatal level and exits the process.
func Fatalf(format string, args ...interface{}) { sugar.Load().Fatalf(format, args...) }
