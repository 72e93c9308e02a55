package logger

import (
	"io"
	"log/slog"
	"os"

	"simple_cart/configs"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func NewLogger(cfg *configs.Config) *slog.Logger {
	level := slog.LevelDebug
	if cfg.Env == envProd {
		level = slog.LevelInfo
	}

	return slog.New(
		slog.NewJSONHandler(NewWriter(cfg), &slog.HandlerOptions{
			Level:     level,
			AddSource: cfg.Env != envLocal,
		}))
}

// NewWriter writes to stdout and, when a log file is configured, to a rotating file.
func NewWriter(cfg *configs.Config) io.Writer {
	if cfg.Log.File == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
}

// NewTestLogger discards everything.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
