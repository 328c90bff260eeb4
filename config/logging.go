package config

import (
	"go.uber.org/zap"

	"github.com/linesmerrill/training-calendar-api/logging"
)

// setLogger builds the process logger for the configured environment
func setLogger(c *Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Env:        c.Env,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	})
}
