package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

const name = "tasktimer"

// New returns a logger writing to w at the given level name.
func New(w io.Writer, level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: w,
		Level:  hclog.LevelFromString(level),
	})
}

// NewFile opens path for appending and returns a logger plus its closer. The
// TUI uses it because the terminal is not available for log lines.
func NewFile(path, level string) (hclog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// Discard is the logger used when none is configured.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
