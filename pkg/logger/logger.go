package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger = zap.NewNop()
	mu     sync.RWMutex
)

// SetupLogger builds the process logger for the given environment and installs
// it as the package global. Development config for "local", production JSON
// otherwise.
func SetupLogger(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case "local", "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		l, err = cfg.Build()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot build logger: %s", err)
	}

	mu.Lock()
	global = l
	mu.Unlock()

	return l
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}
