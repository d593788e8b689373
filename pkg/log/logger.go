package log

import "go.uber.org/zap"

// Logger is a minimal interface compatible with stdlib loggers.
type Logger interface {
	Printf(format string, v ...interface{})
}

// NoopLogger discards all log messages.
type NoopLogger struct{}

func (NoopLogger) Printf(string, ...interface{}) {}

// Infof logs through an optional logger, tolerating nil.
func Infof(l Logger, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.Printf(format, v...)
}

// zapLogger adapts a zap sugared logger to the SDK Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (z zapLogger) Printf(format string, v ...interface{}) {
	z.s.Infof(format, v...)
}

// NewZapLogger wraps a *zap.Logger for use as the SDK diagnostics logger.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return zapLogger{s: l.Sugar()}
}
