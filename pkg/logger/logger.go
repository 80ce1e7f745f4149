package logger

import (
	"fmt"
	"strings"

	"github.com/vzahanych/weather-display/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

// New builds a logger from the logging section of the config. Format is
// "json" or "console"; an empty OutputPath means stderr.
func New(cfg config.LoggingConfig) (*Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	switch strings.ToLower(cfg.Format) {
	case "json", "":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	zcfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.OutputPath != "" {
		zcfg.OutputPaths = []string{cfg.OutputPath}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger}, nil
}

func NewDevelopment() *Logger {
	logger, _ := zap.NewDevelopment()
	return &Logger{logger}
}

func NewProduction() *Logger {
	logger, _ := zap.NewProduction()
	return &Logger{logger}
}

// Sync flushes buffered entries; errors from syncing a terminal are ignored.
func (l *Logger) Sync() error {
	if err := l.Logger.Sync(); err != nil && !strings.Contains(err.Error(), "sync /dev/std") {
		return err
	}
	return nil
}
