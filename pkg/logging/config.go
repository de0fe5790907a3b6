package logging

const TimeFormat = "2006-01-02 15:04:05"

type ProcessName string

const (
	APIProcess   ProcessName = "api"
	RelayProcess ProcessName = "relay"
	CLIProcess   ProcessName = "bountyctl"
)

type LoggerConfig struct {
	ProcessName   ProcessName
	IsDevelopment bool
}

// Logger is the structured logger used across services.
// Key/value variants take alternating keys and values, the *f variants take a printf template.
type Logger interface {
	Debug(msg string, tags ...any)
	Info(msg string, tags ...any)
	Warn(msg string, tags ...any)
	Error(msg string, tags ...any)
	Fatal(msg string, tags ...any)

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})

	With(tags ...any) Logger
	WithTraceID(traceID string) Logger
}
