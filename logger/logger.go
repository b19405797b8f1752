package logger

import (
	"github.com/esimov/ascii-particles/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the sugared logger shared by the simulation hosts. The terminal
// host owns stdout, so logs go to cfg.File when it is set.
func New(cfg config.Log) (*zap.SugaredLogger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	switch cfg.Level {
	case "debug":
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zc.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	zc.EncoderConfig.StacktraceKey = ""
	if !cfg.ShowCaller {
		zc.EncoderConfig.CallerKey = ""
	}
	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l.Sugar(), nil
}
