package logger

import (
	"github.com/pharmatrack/stock-service/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger from config. Console encoding is meant for
// development; anything else gets the production JSON encoder.
func New(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Encoding == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = cfg.DisableCaller
	zc.DisableStacktrace = cfg.DisableStacktrace

	return zc.Build()
}
