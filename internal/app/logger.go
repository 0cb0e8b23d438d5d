package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}

// SlogLogger routes log lines to a *slog.Logger with the component as an attribute.
type SlogLogger struct{ L *slog.Logger }

func (l SlogLogger) Infof(component string, format string, args ...interface{}) {
	l.log(slog.LevelInfo, component, format, args...)
}
func (l SlogLogger) Errorf(component string, format string, args ...interface{}) {
	l.log(slog.LevelError, component, format, args...)
}

func (l SlogLogger) log(level slog.Level, component, format string, args ...interface{}) {
	if l.L == nil || !l.L.Enabled(context.Background(), level) {
		return
	}
	l.L.Log(context.Background(), level, fmt.Sprintf(format, args...), slog.String("component", component))
}

// MultiLogger fans every line out to all loggers.
type MultiLogger []Logger

func (m MultiLogger) Infof(component string, format string, args ...interface{}) {
	for _, l := range m {
		l.Infof(component, format, args...)
	}
}
func (m MultiLogger) Errorf(component string, format string, args ...interface{}) {
	for _, l := range m {
		l.Errorf(component, format, args...)
	}
}
