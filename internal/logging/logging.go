// Package logging builds the structured loggers used across raincatch.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultFile is where the interactive UI logs when no file is given.
const DefaultFile = "~/.raincatch/raincatch.log"

// ErrInvalidLevel is returned for an unknown level name.
var ErrInvalidLevel = errors.New("logging: invalid level")

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// New creates a logger writing to w at the named level.
func New(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidLevel, level)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// OpenFile creates a logger appending to path, creating parent directories
// as needed. The returned closer closes the file.
func OpenFile(path, level, prefix string) (*log.Logger, io.Closer, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	logger, err := New(f, level, prefix)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
