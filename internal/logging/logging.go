// Package logging provides the per-run log file for the cutlist CLI. Every
// run writes a timestamped log under the output directory, next to the
// generated reports.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Run describes the invocation recorded at the top of each log file.
type Run struct {
	Version string
	Input   string
}

// Logger writes tagged lines to a per-run log file. All methods are safe on
// a nil receiver, so --no-log costs nothing at the call sites.
type Logger struct {
	verbose  bool
	logger   *log.Logger
	file     *os.File
	filePath string
}

// Setup creates the run log under logDir and records the invocation
// context. Returns nil when logging is disabled (noLog=true).
func Setup(logDir string, verbose, noLog bool, run Run) (*Logger, error) {
	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	stamp := time.Now().Format("20060102_150405")
	filePath := filepath.Join(logDir, fmt.Sprintf("cutlist_run_%s.log", stamp))
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	l := &Logger{
		verbose:  verbose,
		logger:   log.New(file, "", log.LstdFlags),
		file:     file,
		filePath: filePath,
	}

	l.Info("cutlist %s", run.Version)
	l.Info("Input: %s", run.Input)
	if verbose {
		l.Info("Debug logging enabled")
	}

	return l, nil
}

// Section marks the start of one file's processing in the log.
func (l *Logger) Section(name string) {
	if l == nil {
		return
	}
	l.logger.Printf("---- %s ----", name)
}

func (l *Logger) printf(tag, format string, args ...any) {
	l.logger.Printf("["+tag+"] "+format, args...)
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.printf("INFO", format, args...)
}

// Debug logs a message only in verbose runs. Parsers route their
// unrecognized-line diagnostics here.
func (l *Logger) Debug(format string, args ...any) {
	if l == nil || !l.verbose {
		return
	}
	l.printf("DEBUG", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.printf("WARN", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.printf("ERROR", format, args...)
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// Writer returns an io.Writer that writes to the log file.
func (l *Logger) Writer() io.Writer {
	if l == nil || l.file == nil {
		return io.Discard
	}
	return l.file
}
