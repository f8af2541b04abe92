package logger

// Logger is the logging interface used across the service. The core
// planning engine stays log-free; services and handlers log through
// this interface.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns a Logger for the given component. The output format is
// selected via the APP_ENV environment variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
