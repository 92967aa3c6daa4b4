package core

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skyraksys.com/hrm/config"
)

// NewLogger builds the process logger from configuration. Format "console"
// gives the human-readable development encoder; anything else is json.
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// DatabaseLogLevel maps the configured log level onto the database
// logger's coarser scale.
func DatabaseLogLevel(cfg *config.LogConfig) LogLevel {
	switch cfg.Level {
	case "debug":
		return LogLevelInfo
	case "warn":
		return LogLevelWarn
	case "error":
		return LogLevelError
	}
	return LogLevelWarn
}
