/* pkg/logger/fallback.go */

package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewConsoleLogger builds a console-only logger writing to w.
func NewConsoleLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// NewTeeLogger writes console lines at consoleLevel and JSON lines at INFO to file.
func NewTeeLogger(console io.Writer, consoleLevel zapcore.Level, file zapcore.WriteSyncer) *zap.Logger {
	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(zapcore.AddSync(console)), consoleLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), file, zap.InfoLevel),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback sets up console plus file logging, dropping to
// console-only when no log file can be opened.
func InitializeWithFallback() {
	level := ParseLogLevel(os.Getenv("LOG_LEVEL"), zapcore.WarnLevel)

	path, writer, err := FindWritableLogPath(DefaultLogPaths())
	if err != nil {
		l := NewConsoleLogger(os.Stderr, level)
		Set(l)
		l.Debug("No writable log path found, logging to console only", zap.Error(err))
		return
	}

	l := NewTeeLogger(os.Stderr, level, writer)
	Set(l)
	l.Debug("Logger initialized",
		zap.String("console_level", level.String()),
		zap.String("log_path", path),
	)
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}
