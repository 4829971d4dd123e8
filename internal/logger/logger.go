package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/habyx/backend/config"
)

// New builds the application logger. Production writes JSON with an ISO8601
// timestamp; every other environment gets the console encoder.
func New(level string, env config.Environment) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if env.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// Must is New for main packages that cannot continue without a logger.
func Must(level string, env config.Environment) *zap.Logger {
	l, err := New(level, env)
	if err != nil {
		return zap.NewExample()
	}
	return l
}
