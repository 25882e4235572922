package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
}

// L is the process-wide logger used by the CLI and by code paths that have
// no injected logger. Everything else receives a *Logger explicitly.
var L *Logger

// NewLogger creates a production logger. In dev mode the level drops to debug
// and output switches to the console encoder.
func NewLogger(dev bool) (*Logger, error) {
	config := zap.NewProductionConfig()
	if dev {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func init() {
	l, err := NewLogger(false)
	if err != nil {
		l = NewNop()
	}
	L = l
}

// Or returns l, or the global logger when l is nil.
func Or(l *Logger) *Logger {
	if l != nil {
		return l
	}
	return L
}
