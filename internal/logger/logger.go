package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init replaces the global zap logger. The returned level can be changed at runtime.
func Init(env, level string) (zap.AtomicLevel, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl.SetLevel(zap.InfoLevel)
	}

	var cfg zap.Config
	if strings.ToLower(env) == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return lvl, err
	}
	zap.ReplaceGlobals(l)

	return lvl, nil
}

// SetLevel applies level to lvl, keeping the current level when level is not recognised.
func SetLevel(lvl zap.AtomicLevel, level string) {
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		zap.L().Warn("ignoring unknown log level", zap.String("level", level))
		return
	}

	zap.L().Info("log level changed", zap.String("level", lvl.String()))
}
