package logger

import (
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// Init builds the process-wide logger. Production environments get JSON
// output, everything else gets the development console encoder.
func Init(environment string) {
	var zl *zap.Logger
	var err error

	if environment == "production" {
		zl, err = zap.NewProduction(zap.WithCaller(false))
	} else {
		zl, err = zap.NewDevelopment(zap.WithCaller(false))
	}
	if err != nil {
		zl = zap.NewNop()
	}

	log = zl.Sugar()
}

func get() *zap.SugaredLogger {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return log
}

func Debug(msg string, keysAndValues ...interface{}) {
	get().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	get().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	get().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	get().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	get().Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
