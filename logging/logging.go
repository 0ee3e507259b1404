package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// ToLogrusLevel translates a log level enum to the equivalent logrus level
func ToLogrusLevel(level int) log.Level {
	switch level {
	case DebugLevel:
		return log.DebugLevel
	case InfoLevel:
		return log.InfoLevel
	case WarnLevel:
		return log.WarnLevel
	case ErrorLevel:
		return log.ErrorLevel
	case FatalLevel:
		return log.FatalLevel
	default:
		return log.TraceLevel
	}
}

// Options configures a Logger
type Options struct {
	Level     int       // Minimum level to emit. Defaults to TraceLevel (0); callers normally pass InfoLevel.
	File      string    // If set, log lines are appended to this file instead of Stderr
	MaxSizeMB int       // Size at which File is rotated. Defaults to 100.
	Stderr    io.Writer // Destination when File is empty. Defaults to os.Stderr.
}

// New creates a logger. Log output goes to stderr unless a log file is configured,
// in which case lines are appended to that file.
func New(opts Options) *log.Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	logger.SetLevel(ToLogrusLevel(opts.Level))
	switch {
	case opts.File != "":
		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = 100
		}
		logger.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: 5,
		})
	case opts.Stderr != nil:
		logger.SetOutput(opts.Stderr)
	default:
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// Discard returns a logger which drops everything. Handy in tests.
func Discard() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}
