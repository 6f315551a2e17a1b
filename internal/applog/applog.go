// Package applog initialises the global slog logger for the application.
// Call Init once at startup; all other packages use log/slog directly.
package applog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogFileName is the log file created in the OS temp directory.
const LogFileName = "volley-stats.log"

var debugMode bool

// Init sets up the global slog logger writing text records to stdout and the
// temp log file. It returns the closer of the log file, or nil if it could not be opened.
func Init(debug bool) io.Closer {
	debugMode = debug

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	writers := []io.Writer{os.Stdout}
	f, err := os.OpenFile(LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		writers = append(writers, f)
	}

	h := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	if err != nil {
		slog.Warn("log file unavailable", "path", LogPath(), "error", err)
		return nil
	}
	return f
}

// IsDebug reports whether debug mode is active.
func IsDebug() bool {
	return debugMode
}

// LogPath is where Init appends the log file.
func LogPath() string {
	return filepath.Join(os.TempDir(), LogFileName)
}
