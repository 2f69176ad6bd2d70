package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"portfolio/global"
)

func NewLogger(level, encoding string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var zc zap.Config
	switch encoding {
	case "", "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("log encoding %q is not supported", encoding)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}

func InitLogger(cfg *Config) error {
	logger, err := NewLogger(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	global.Logger = logger.With(zap.String("app", cfg.App.Name))
	return nil
}
