package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the process-wide logger; nil until Init.
	Logger *log.Logger

	// logFile is the dated file opened by InitFile.
	logFile *os.File
)

// Init creates the logger writing to w at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func Init(w io.Writer, level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
	})
}

// InitFile initializes logging to stderr and to a dated file in dir.
func InitFile(dir, level string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("paraphrase-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	Init(io.MultiWriter(os.Stderr, logFile), level)
	return nil
}

// Close closes the file opened by InitFile, if any.
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// current returns the global logger, or a discarding one before Init.
func current() *log.Logger {
	if Logger != nil {
		return Logger
	}
	return discard
}

var discard = log.New(io.Discard)

// Info logs at info level.
func Info(msg string, keyvals ...any) { current().Info(msg, keyvals...) }

// Debug logs at debug level.
func Debug(msg string, keyvals ...any) { current().Debug(msg, keyvals...) }

// Warn logs at warn level. Skipped input lines are reported here.
func Warn(msg string, keyvals ...any) { current().Warn(msg, keyvals...) }

// Error logs at error level.
func Error(msg string, keyvals ...any) { current().Error(msg, keyvals...) }

// Fatal logs and exits with status 1.
func Fatal(msg string, keyvals ...any) {
	current().Error(msg, keyvals...)
	Close()
	os.Exit(1)
}

// WithPrefix returns a logger that tags every line with prefix.
func WithPrefix(prefix string) *log.Logger {
	return current().WithPrefix(prefix)
}
