package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	// Sink is a file path, empty means stdout.
	Sink string `yaml:"sink" envconfig:"LOG_SINK"`
}

func NewLogger(cfg Log, name string) *zap.Logger {
	return newLogger(cfg, name, zapcore.Lock(os.Stdout))
}

// newLogger writes to the configured sink, or to fallback when there is none
// or it cannot be opened.
func newLogger(cfg Log, name string, fallback zapcore.WriteSyncer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	sink := fallback
	var sinkErr error
	if cfg.Sink != "" {
		f, err := os.OpenFile(cfg.Sink, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			sinkErr = err
		} else {
			sink = zapcore.AddSync(f)
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		sink,
		zap.NewAtomicLevelAt(cfg.LogLevel),
	)
	log := zap.New(core, zap.AddCaller()).Named(name)
	if sinkErr != nil {
		log.Error("open log sink, writing to stdout", zap.String("sink", cfg.Sink), zap.Error(sinkErr))
	}
	return log
}
