package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newFileCore writes JSON entries to a rotating file at the same minimum
// level as the console core.
func newFileCore(o Options, console zapcore.Core) zapcore.Core {
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   o.File,
		MaxSize:    o.MaxSizeMB,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAgeDays,
		Compress:   true,
	})
	return zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, minLevel(console))
}

func minLevel(c zapcore.Core) zapcore.Level {
	for l := zapcore.DebugLevel; l < zapcore.FatalLevel; l++ {
		if c.Enabled(l) {
			return l
		}
	}
	return zapcore.FatalLevel
}
