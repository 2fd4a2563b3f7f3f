package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger creates the structured logger used by every command.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridshooter",
		Level:           lvl,
	})
	return logger, nil
}

// openLog opens path for appending. An empty path discards output so the
// log never draws over the alternate screen.
func openLog(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return f, f.Close, nil
}
