// Package zaplog backs the glog logging contracts with go.uber.org/zap for
// binaries that need a concrete sink.
package zaplog

import (
	"context"
	"io"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New writes console encoded entries with UTC RFC3339 timestamps to w. Debug
// and trace entries are dropped unless debug is set.
func New(w io.Writer, debug bool) *Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format(time.RFC3339))
	}
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	return FromZap(zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.AddSync(w),
		level,
	)))
}

func FromZap(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{base: logger, sugar: logger.Sugar()}
}

func (l *Logger) Trace(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

// Fatal logs at error level with fatal=true. It never exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.sugar.Errorw(msg, append([]any{"fatal", true}, args...)...)
}

func (l *Logger) WithContext(context.Context) glog.Logger {
	return l
}

// GetLogger returns a child logger named after a component.
func (l *Logger) GetLogger(name string) glog.Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		return l
	}
	return FromZap(l.base.Named(name))
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

var (
	_ glog.Logger         = (*Logger)(nil)
	_ glog.LoggerProvider = (*Logger)(nil)
)
