package logger

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ContextLogger is a named logger writing through the factory's shared
// zerolog instance.
type ContextLogger struct {
	zeroLogger *zerolog.Logger
	name       string
	level      LogLevel
}

func newContextLogger(root zerolog.Logger, name string, level LogLevel) *ContextLogger {
	zl := root.With().Str("module", name).Logger().Level(toZeroLevel(level))
	return &ContextLogger{
		zeroLogger: &zl,
		name:       name,
		level:      level,
	}
}

func (c *ContextLogger) Trace(format string, args ...interface{}) {
	c.logMessage(c.zeroLogger.Trace(), format, args)
}

func (c *ContextLogger) Debug(format string, args ...interface{}) {
	c.logMessage(c.zeroLogger.Debug(), format, args)
}

func (c *ContextLogger) Info(format string, args ...interface{}) {
	c.logMessage(c.zeroLogger.Info(), format, args)
}

func (c *ContextLogger) Warning(format string, args ...interface{}) {
	c.logMessage(c.zeroLogger.Warn(), format, args)
}

func (c *ContextLogger) Error(format string, args ...interface{}) {
	c.logMessage(c.zeroLogger.Error(), format, args)
}

func (c *ContextLogger) logMessage(event *zerolog.Event, format string, args []interface{}) {
	if len(args) == 0 {
		event.Msg(format)
	} else {
		event.Msgf(format, args...)
	}
}

// ChangeLevel changes the level of the context logger.
func (c *ContextLogger) ChangeLevel(newLevel LogLevel) {
	c.level = newLevel
	*c.zeroLogger = c.zeroLogger.Level(toZeroLevel(newLevel))
}

func toZeroLevel(lvl LogLevel) zerolog.Level {
	switch lvl {
	case NONE:
		return zerolog.Disabled
	case TRACE:
		return zerolog.TraceLevel
	case DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARNING:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		panic(fmt.Sprintf("unknown level: %d", lvl))
	}
}
