package logger

import (
	"fmt"

	"github.com/gdugdh24/devconnector-backend/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Development environments get the
// console encoder, everything else JSON.
func New(cfg *config.LoggingConfig, env string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if env == "development" {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
