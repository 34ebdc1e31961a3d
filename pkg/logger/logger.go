package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xuantrong94/chat-backend/pkg/config"
)

type Logger struct {
	*zap.SugaredLogger
}

// New initializes a zap logger; JSON output in production, colored console
// output everywhere else.
func New(env string) *Logger {
	var cfg zap.Config

	if env == config.EnvProduction {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "ts"
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := cfg.Build()
	if err != nil {
		panic("[LOGGER] failed to initialize -> " + err.Error())
	}

	return &Logger{log.Sugar()}
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}
