package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describes how the process logger should be built
type Options struct {
	Env        string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New creates a new zap logger for the given environment. When a log file is
// configured every entry is also written, as JSON, to a size-rotated file.
func New(o Options) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	switch o.Env {
	case "production":
		logger, err = zap.NewProduction()
	case "development":
		logger, err = zap.NewDevelopment()
	default:
		logger = zap.NewExample()
	}
	if err != nil {
		return nil, err
	}

	if o.File == "" {
		return logger, nil
	}

	fileCore := newFileCore(o, logger.Core())
	return logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	})), nil
}
