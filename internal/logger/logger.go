// Package logger provides the structured logger used across ztoq.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at the given level
func New(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Open creates a logger writing to w and, when logFile is set, appending to
// that file as well. The returned cleanup closes the file.
func Open(w io.Writer, logFile string, level log.Level) (*Logger, func(), error) {
	if logFile == "" {
		return New(w, level), func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	cleanup := func() {
		f.Close()
	}

	return New(io.MultiWriter(w, f), level), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard, log.InfoLevel)
}

// DirStarted logs the start of a directory conversion
func (l *Logger) DirStarted(inputDir, outputDir string) {
	l.Debug("directory conversion started",
		"input_dir", inputDir,
		"output_dir", outputDir)
}

// DirConverted logs the completion of a directory conversion
func (l *Logger) DirConverted(inputDir, outputDir string, filesConverted int, errors int, duration time.Duration) {
	l.Info("converted directory",
		"input_dir", inputDir,
		"output_dir", outputDir,
		"files_converted", filesConverted,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// FileConverted logs a successful file conversion
func (l *Logger) FileConverted(source, dest string) {
	l.Info("output written",
		"source", source,
		"dest", dest)
}

// FileChanged logs a change picked up in watch mode
func (l *Logger) FileChanged(file string) {
	l.Info("file changed, re-converting",
		"file", file)
}

// WatchStarted logs the start of watch mode
func (l *Logger) WatchStarted(path string, interval time.Duration) {
	if interval > 0 {
		l.Info("watching for changes",
			"path", path,
			"interval", interval)
		return
	}
	l.Info("watching for changes",
		"path", path)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Warn("failed to process",
		"file", file,
		"error", err)
}

// ConversionError logs a conversion error
func (l *Logger) ConversionError(source, dest string, err error) {
	l.Error("conversion failed",
		"source", source,
		"dest", dest,
		"error", err)
}

// RepoUnavailable logs why image paths are left relative
func (l *Logger) RepoUnavailable(err error) {
	l.Debug("image path rewriting disabled",
		"reason", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path, remote string, interval time.Duration) {
	l.Debug("config loaded",
		"path", path,
		"remote", remote,
		"poll_interval", interval)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Warn("skipping",
		"file", file,
		"reason", reason)
}
