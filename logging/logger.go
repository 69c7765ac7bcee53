// Package logging provides the process-level loggers used outside of individual tests.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// ConsoleLogger writes human-readable log lines through zerolog's console writer. It satisfies
// framework.Logger.
type ConsoleLogger struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewConsoleLogger creates a ConsoleLogger that writes to out. Every Printf call is emitted at
// the specified level; messages below minLevel are dropped.
func NewConsoleLogger(out io.Writer, level, minLevel zerolog.Level) *ConsoleLogger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    color.NoColor,
	}
	return &ConsoleLogger{
		logger: zerolog.New(output).Level(minLevel).With().Timestamp().Logger(),
		level:  level,
	}
}

// WithComponent returns a copy of the logger that tags every line with a component name.
func (l *ConsoleLogger) WithComponent(component string) *ConsoleLogger {
	return &ConsoleLogger{
		logger: l.logger.With().Str("component", component).Logger(),
		level:  l.level,
	}
}

func (l *ConsoleLogger) Printf(message string, args ...interface{}) {
	l.logger.WithLevel(l.level).Msg(fmt.Sprintf(message, args...))
}
