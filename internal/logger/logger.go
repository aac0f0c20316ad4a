// Package logger configures the process-wide logrus logger. Stdout carries the
// MCP protocol, so output goes to stderr or a file, never stdout.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Level  string
	Format string // text | json
	File   string // empty = stderr
}

var root = logrus.StandardLogger()

// Setup applies cfg to the root logger. The returned cleanup closes the log
// file, if any, and restores stderr output.
func Setup(cfg Config) (func() error, error) {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		l, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}
	root.SetLevel(level)

	switch cfg.Format {
	case "json":
		root.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		root.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if cfg.File == "" {
		root.SetOutput(os.Stderr)
		return func() error { return nil }, nil
	}

	f, err := openLogFile(cfg.File)
	if err != nil {
		return nil, err
	}
	root.SetOutput(f)
	return func() error {
		root.SetOutput(os.Stderr)
		return f.Close()
	}, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Named returns an entry tagged with a component field.
func Named(component string) *logrus.Entry {
	entry := logrus.NewEntry(root)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}
