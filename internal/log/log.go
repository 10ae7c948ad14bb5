package log

import (
	"io"
	"os"

	"github.com/PixPMusic/gopher-midi/internal/config"
	"github.com/sirupsen/logrus"
)

// DefaultLogger is used by the package level functions
var DefaultLogger = NewLogger(config.LogConfig{Level: "info"})

// LogParams wrapper around key values used for logging
type LogParams map[string]interface{}

// Logger for logging
type Logger struct {
	entry *logrus.Entry

	file *os.File
}

// NewLogger instantiates a logger based on the config. Logs go to c.Path when
// it can be opened, to stderr otherwise.
func NewLogger(c config.LogConfig) *Logger {
	return newLogger(c, os.Stderr)
}

func newLogger(c config.LogConfig, fallback io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(fallback)
	if c.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := &Logger{entry: logrus.NewEntry(l)}
	logger.SetLevel(c.Level)

	if c.Path != "" {
		f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.With(LogParams{"path": c.Path, "error": err.Error()}).Warn("could not open log file, logging to stderr")
		} else {
			logger.file = f
			l.SetOutput(f)
		}
	}
	return logger
}

// New returns a logger writing to w, for tests and embedding
func New(w io.Writer, level string) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	logger := &Logger{entry: logrus.NewEntry(l)}
	logger.SetLevel(level)
	return logger
}

// Debug logs a message with the default logger
func Debug(s string) {
	DefaultLogger.Debug(s)
}

// Info logs a message with the default logger
func Info(s string) {
	DefaultLogger.Info(s)
}

// Warn logs a message with the default logger
func Warn(s string) {
	DefaultLogger.Warn(s)
}

// Error logs a message with the default logger
func Error(s string) {
	DefaultLogger.Error(s)
}

// With returns the default logger with the specified parameters
func With(params LogParams) *Logger {
	return DefaultLogger.With(params)
}

// Debug logs a debug message
func (l *Logger) Debug(s string) {
	l.entry.Debug(s)
}

// Info logs a message with level `info`
func (l *Logger) Info(s string) {
	l.entry.Info(s)
}

// Warn logs a message with level `warning`
func (l *Logger) Warn(s string) {
	l.entry.Warn(s)
}

// Error logs a message with level `error`
func (l *Logger) Error(s string) {
	l.entry.Error(s)
}

// With returns a logger initialized with the parameters
func (l *Logger) With(params LogParams) *Logger {
	return &Logger{
		entry: l.entry.WithFields(logrus.Fields(params)),
	}
}

// SetLevel sets the level of the logger, ignoring unknown names
func (l *Logger) SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	l.entry.Logger.SetLevel(lvl)
}

// Destroy closes the log file, if any
func (l *Logger) Destroy() {
	if l.file != nil {
		l.file.Close()
	}
}

// Init replaces the default logger
func Init(c config.LogConfig) {
	DefaultLogger = NewLogger(c)
}

// Destroy closes the default logger's file
func Destroy() {
	DefaultLogger.Destroy()
}
