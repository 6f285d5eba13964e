// Package logs provides the structured debug logger shared by daystrip components.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "daystrip-debug.log"

var (
	mu      sync.Mutex
	logger  = Discard()
	logFile *os.File
)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init configures the process logger. When enabled, JSON records are appended
// to path (DebugLogPath when empty); otherwise logging is discarded.
func Init(enabled bool, path string) (*slog.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		logger = Discard()
		return logger, nil
	}

	if path == "" {
		path = DebugLogPath
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Discard(), fmt.Errorf("creating debug log: %w", err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("debug_start", "log_file", path, "time", time.Now().Format(time.RFC3339))
	return logger, nil
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Close flushes and closes the debug log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	logger.Info("debug_end", "time", time.Now().Format(time.RFC3339))
	err := logFile.Close()
	logFile = nil
	logger = Discard()
	return err
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
