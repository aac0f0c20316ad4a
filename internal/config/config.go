// Package config loads the optional YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Backend names accepted in the backend field.
const (
	BackendAutoCAD = "autocad"
	BackendDryRun  = "dryrun"
)

// Config is the full file schema.
type Config struct {
	Backend string        `yaml:"backend"`
	AutoCAD AutoCADConfig `yaml:"autocad"`
	Log     LogConfig     `yaml:"log"`
}

// AutoCADConfig selects the automation server and how to reach it.
type AutoCADConfig struct {
	ProgID            string `yaml:"prog_id"`
	CreateIfNotExists bool   `yaml:"create_if_not_exists"`
	Visible           bool   `yaml:"visible"`
}

// LogConfig controls the root logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Backend: BackendAutoCAD,
		AutoCAD: AutoCADConfig{
			ProgID:            "AutoCAD.Application",
			CreateIfNotExists: true,
			Visible:           true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendAutoCAD, BackendDryRun:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendAutoCAD, BackendDryRun)
	}
	if c.Backend == BackendAutoCAD && c.AutoCAD.ProgID == "" {
		return errors.New("autocad.prog_id is empty")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q (want text or json)", c.Log.Format)
	}
	return nil
}
