// Package logger defines the leveled logger used across hgmanifest.
package logger

import (
	"go.uber.org/zap"
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

var Discard Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}

var _ Logger = (*zap.SugaredLogger)(nil)

// Zap adapts l. A nil l yields Discard.
func Zap(l *zap.Logger) Logger {
	if l == nil {
		return Discard
	}
	return l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// With returns l annotated with key value pairs when l is backed by zap;
// other loggers are returned unchanged.
func With(l Logger, keysAndValues ...interface{}) Logger {
	if s, ok := l.(*zap.SugaredLogger); ok {
		return s.With(keysAndValues...)
	}
	return l
}
