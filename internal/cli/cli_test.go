package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"acad-mcp/internal/config"
)

// --- resolveConfig ---

func parseFlags(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	cmd := newRootCmd()
	var f rootFlags
	fl := cmd.Flags()
	if err := fl.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	f.configPath, _ = fl.GetString("config")
	f.backend, _ = fl.GetString("backend")
	f.progID, _ = fl.GetString("prog-id")
	f.noLaunch, _ = fl.GetBool("no-launch")
	f.logLevel, _ = fl.GetString("log-level")
	f.logFile, _ = fl.GetString("log-file")
	f.debug, _ = fl.GetBool("debug")
	return resolveConfig(cmd, f)
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := parseFlags(t)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestResolveConfig_FlagsOverride(t *testing.T) {
	cfg, err := parseFlags(t, "--backend", "dryrun", "--prog-id", "ZWCAD.Application", "--no-launch", "--debug")
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Backend != config.BackendDryRun {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.AutoCAD.ProgID != "ZWCAD.Application" {
		t.Errorf("ProgID = %q", cfg.AutoCAD.ProgID)
	}
	if cfg.AutoCAD.CreateIfNotExists {
		t.Error("expected --no-launch to disable CreateIfNotExists")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestResolveConfig_FlagBeatsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte("backend: dryrun\nlog:\n  level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := parseFlags(t, "--config", p, "--log-level", "error")
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Backend != config.BackendDryRun {
		t.Errorf("Backend = %q, want value from file", cfg.Backend)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want flag value", cfg.Log.Level)
	}
}

func TestResolveConfig_InvalidBackend(t *testing.T) {
	if _, err := parseFlags(t, "--backend", "freecad"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

// --- version ---

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "acad-mcp ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRun_RejectsBadConfig(t *testing.T) {
	err := run(context.Background(), "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}
