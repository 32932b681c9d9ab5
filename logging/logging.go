// Package logging implements access to a default logger and named child
// loggers backed by zap, writing either to the console or to
// systemd-journald.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	CONSOLE = "console"
	JOURNAL = "systemd-journald"
)

// Logger wraps zap.SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger returns a new Logger.
func NewLogger(logger *zap.SugaredLogger) *Logger {
	return &Logger{SugaredLogger: logger}
}

// Logging implements access to a default logger and named child loggers.
// Log levels can be configured per logger.
type Logging struct {
	logger    *Logger
	output    string
	verbosity zapcore.Level
	options   Options

	mu      sync.Mutex
	loggers map[string]*Logger

	coreFactory func(zap.AtomicLevel) zapcore.Core
}

// NewLogging takes the name and log level for the default logger,
// the log output, which can be console or systemd-journald, and
// options for creating child loggers with their individual log levels.
func NewLogging(name string, level zapcore.Level, output string, options Options) (*Logging, error) {
	verbosity := zap.NewAtomicLevelAt(level)

	var coreFactory func(zap.AtomicLevel) zapcore.Core
	switch output {
	case CONSOLE:
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		ws := zapcore.Lock(os.Stderr)
		coreFactory = func(lvl zap.AtomicLevel) zapcore.Core {
			return zapcore.NewCore(enc, ws, lvl)
		}
	case JOURNAL:
		coreFactory = func(lvl zap.AtomicLevel) zapcore.Core {
			return NewJournaldCore(name, lvl)
		}
	default:
		return nil, invalidOutput(output)
	}

	logger := NewLogger(zap.New(coreFactory(verbosity)).Named(name).Sugar())

	return &Logging{
		logger:      logger,
		output:      output,
		verbosity:   level,
		options:     options,
		loggers:     make(map[string]*Logger),
		coreFactory: coreFactory,
	}, nil
}

// NewLoggingFromConfig returns a new Logging from Config.
func NewLoggingFromConfig(name string, c Config) (*Logging, error) {
	return NewLogging(name, c.Level, c.Output, c.Options)
}

// GetLogger returns the default logger.
func (l *Logging) GetLogger() *Logger {
	return l.logger
}

// GetChildLogger returns a named child logger.
// Log levels for child loggers can be configured via the logging options.
func (l *Logging) GetChildLogger(name string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	if logger, ok := l.loggers[name]; ok {
		return logger
	}

	var logger *Logger
	if level, found := l.options[name]; found {
		verbosity := zap.NewAtomicLevelAt(level)
		logger = NewLogger(zap.New(l.coreFactory(verbosity)).Named(name).Sugar())
	} else {
		logger = NewLogger(l.logger.Named(name))
	}

	l.loggers[name] = logger

	return logger
}
