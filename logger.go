package hgmanifest

import (
	"go.uber.org/zap"

	"github.com/kezhuw/hgmanifest/internal/logger"
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DiscardLogger is a nop Logger.
var DiscardLogger = logger.Discard

// ZapLogger adapts a zap logger. *zap.SugaredLogger is a Logger already.
func ZapLogger(l *zap.Logger) Logger {
	return logger.Zap(l)
}

var _ Logger = (logger.Logger)(nil)
var _ logger.Logger = (Logger)(nil)
