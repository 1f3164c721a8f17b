// Package logging builds the charmbracelet/log logger shared by the store and shells.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileName is the log file used while the TUI owns the terminal.
const FileName = "tasks.log"

// Options holds configuration for a logger.
type Options struct {
	Level           string
	Prefix          string
	ReportTimestamp bool
}

// DefaultOptions returns options for console logging.
func DefaultOptions() Options {
	return Options{
		Level:  "warn",
		Prefix: "tasks",
	}
}

// New creates a text logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	}), nil
}

// OpenFile appends to <dir>/tasks.log. The caller closes the returned file.
func OpenFile(dir string, opts Options) (*log.Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	opts.ReportTimestamp = true
	l, err := New(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return l, f, nil
}
