package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Logger defines the common logging interface used throughout the application.
// It separates operational records (Debug, Info, Warning, Error), which are
// structured slog records, from user-facing console lines (InfoToUser,
// WarningToUser, Success, StatusMessage).
type Logger interface {
	// Operational records

	// Debug logs a verbose diagnostic record. Dropped unless debug logging is enabled.
	//
	// The format string follows fmt.Printf style formatting.
	Debug(format string, args ...any)

	// Info logs an informational record.
	//
	// The format string follows fmt.Printf style formatting.
	Info(format string, args ...any)

	// Warning logs a record about a potential issue that is not a failure.
	//
	// The format string follows fmt.Printf style formatting.
	Warning(format string, args ...any)

	// Error logs a record about an operational failure. Errors are always
	// visible on stderr, even when records are routed to a log file.
	//
	// The format string follows fmt.Printf style formatting.
	Error(format string, args ...any)

	// User-facing messages (stdout, mirrored to the log file when one is configured)

	// InfoToUser prints an informational line for the operator.
	InfoToUser(format string, args ...any)

	// WarningToUser prints a warning line for the operator.
	WarningToUser(format string, args ...any)

	// Success prints a success line for the operator.
	Success(format string, args ...any)

	// StatusMessage prints a plain status line to stdout only.
	StatusMessage(format string, args ...any)

	// Close flushes and closes the log file, if any.
	Close() error
}

// DefaultLogger provides structured logging capability and implements the Logger interface
type DefaultLogger struct {
	mu      sync.Mutex
	logger  *slog.Logger
	debug   bool
	logFile string
	stdout  io.Writer
	stderr  io.Writer
	file    *os.File
}

// New creates a new Logger instance writing to the process's standard streams.
func New(debug bool, logFile string) Logger {
	return NewWithOutput(debug, logFile, os.Stdout, os.Stderr)
}

// NewWithOutput creates a DefaultLogger with custom output writers.
// Records go to logFile when it is set and can be opened, otherwise to stderr.
func NewWithOutput(debug bool, logFile string, stdout, stderr io.Writer) *DefaultLogger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var file *os.File
	var sink io.Writer = stderr

	if logFile != "" {
		logDir := filepath.Dir(logFile)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				_, _ = fmt.Fprintf(stderr, "⚠️ Failed to create log directory: %v\n", err)
			}
		}

		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			file = f
			sink = f
		} else {
			_, _ = fmt.Fprintf(stderr, "⚠️ Failed to open log file: %v, using stderr instead\n", err)
			logFile = ""
		}
	}

	l := &DefaultLogger{
		logger:  slog.New(slog.NewTextHandler(sink, opts)),
		debug:   debug,
		logFile: logFile,
		stdout:  stdout,
		stderr:  stderr,
		file:    file,
	}

	if file != nil {
		l.logger.Info("syncshot logging started", "debug", debug)
	}

	return l
}

// Debug logs a debug record
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.debug {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs an informational record
func (l *DefaultLogger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Info(fmt.Sprintf(format, args...))
}

// Warning logs a warning record
func (l *DefaultLogger) Warning(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error record
func (l *DefaultLogger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.logger.Error(msg)

	// Records already land on stderr when there is no log file
	if l.file != nil {
		_, _ = fmt.Fprintf(l.stderr, "❌ %s\n", msg)
	}
}

// InfoToUser logs an informational message to stdout and the log file
func (l *DefaultLogger) InfoToUser(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.logger.Info(msg)
	}
	_, _ = fmt.Fprintf(l.stdout, "ℹ️  %s\n", msg)
}

// WarningToUser logs a warning message to stdout and the log file
func (l *DefaultLogger) WarningToUser(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.logger.Warn(msg)
	}
	_, _ = fmt.Fprintf(l.stdout, "⚠️  %s\n", msg)
}

// Success logs a success message to stdout and the log file
func (l *DefaultLogger) Success(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if l.file != nil {
		l.logger.Info(msg)
	}
	_, _ = fmt.Fprintf(l.stdout, "✅ %s\n", msg)
}

// StatusMessage prints a status message to stdout only (no logging)
func (l *DefaultLogger) StatusMessage(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintln(l.stdout, fmt.Sprintf(format, args...))
}

// Close ensures any buffered data is written and closes open log file handles
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	// Sync ensures any buffered data is flushed to disk before closing
	if err := l.file.Sync(); err != nil {
		return err
	}
	err := l.file.Close()
	l.file = nil
	return err
}
