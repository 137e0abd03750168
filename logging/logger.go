// Package logging wraps log/slog with a console plus rotating-file setup
// and a request logging middleware for the medications API.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// rotatingWriter appends to one log file per ISO week and deletes files
// older than the retention period.
type rotatingWriter struct {
	logDir      string
	retention   time.Duration
	mu          sync.Mutex
	currentFile *os.File
	currentWeek string
	lastCleanup time.Time
}

func newRotatingWriter(logDir string, retentionWeeks int) *rotatingWriter {
	return &rotatingWriter{
		logDir:    logDir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
	}
}

// weekKey returns the ISO week in YYYY-Www format
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (rw *rotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	now := time.Now()
	week := weekKey(now)

	if rw.currentFile == nil || rw.currentWeek != week {
		if rw.currentFile != nil {
			if err := rw.currentFile.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
			}
		}

		logPath := filepath.Join(rw.logDir, fmt.Sprintf("app-%s.log", week))
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return 0, fmt.Errorf("failed to open log file %s: %w", logPath, err)
		}

		rw.currentFile = file
		rw.currentWeek = week
	}

	if now.Sub(rw.lastCleanup) > 24*time.Hour {
		rw.lastCleanup = now
		rw.cleanupOldLogs(now)
	}

	return rw.currentFile.Write(p)
}

// cleanupOldLogs removes log files older than the retention period.
// Failures are ignored; stale log files are not worth failing a write.
func (rw *rotatingWriter) cleanupOldLogs(now time.Time) {
	entries, err := os.ReadDir(rw.logDir)
	if err != nil {
		return
	}

	cutoff := now.Add(-rw.retention)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(rw.logDir, name))
		}
	}
}

// SetupLogger configures slog to write text to the console and JSON to a
// weekly rotating file under logDir. With an empty logDir, or when the
// directory cannot be created, it falls back to console-only logging.
func SetupLogger(logDir string, retentionWeeks int, level slog.Level) *slog.Logger {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	if logDir == "" {
		return slog.New(consoleHandler)
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		logger := slog.New(consoleHandler)
		logger.Error("Failed to create logs directory", "error", err)
		return logger
	}

	fileHandler := slog.NewJSONHandler(newRotatingWriter(logDir, retentionWeeks), &slog.HandlerOptions{Level: level})

	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})
}

// ParseLevel maps a config log level string to a slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// multiHandler fans one record out to several slog handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
