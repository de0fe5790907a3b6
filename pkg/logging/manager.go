package logging

import "sync"

type LoggerManager struct {
	serviceLogger Logger
	once          sync.Once
}

var loggerManager = &LoggerManager{}

func InitServiceLogger(config LoggerConfig) error {
	var err error
	loggerManager.once.Do(func() {
		var logger *ZapLogger
		logger, err = NewZapLogger(config)
		if err == nil {
			loggerManager.serviceLogger = logger
		}
	})
	return err
}

func GetServiceLogger() Logger {
	if loggerManager.serviceLogger == nil {
		panic("logger not initialized")
	}
	return loggerManager.serviceLogger
}

// Shutdown flushes buffered entries of the service logger
func Shutdown() {
	if zl, ok := loggerManager.serviceLogger.(*ZapLogger); ok && zl != nil {
		// sync on stdout returns EINVAL on some platforms
		_ = zl.Sync()
	}
}

// NewNoOpLogger creates a logger that discards everything
func NewNoOpLogger() Logger {
	return &NoOpLogger{}
}

type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, tags ...any)               {}
func (n *NoOpLogger) Info(msg string, tags ...any)                {}
func (n *NoOpLogger) Warn(msg string, tags ...any)                {}
func (n *NoOpLogger) Error(msg string, tags ...any)               {}
func (n *NoOpLogger) Fatal(msg string, tags ...any)               {}
func (n *NoOpLogger) Debugf(template string, args ...interface{}) {}
func (n *NoOpLogger) Infof(template string, args ...interface{})  {}
func (n *NoOpLogger) Warnf(template string, args ...interface{})  {}
func (n *NoOpLogger) Errorf(template string, args ...interface{}) {}
func (n *NoOpLogger) Fatalf(template string, args ...interface{}) {}
func (n *NoOpLogger) With(tags ...any) Logger                     { return n }
func (n *NoOpLogger) WithTraceID(traceID string) Logger           { return n }
