// Package xlog holds the process-wide zap logger.
package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	ZapLogger = zap.NewNop()
	Logger    = ZapLogger.Sugar()

	initialized bool
)

// InitLog replaces the no-op logger with a development logger writing to
// outputPath at level. It may only be called once.
func InitLog(outputPath []string, level zapcore.Level) error {
	if initialized {
		panic("InitLog called somewhere")
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = outputPath
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.Level.SetLevel(level)

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	ZapLogger = l
	Logger = l.Sugar()
	initialized = true
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	ZapLogger.Sync()
}
