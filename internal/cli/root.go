package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"acad-mcp/internal/app"
	"acad-mcp/internal/buildinfo"
	"acad-mcp/internal/config"
	"acad-mcp/internal/logger"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	backend    string
	progID     string
	noLaunch   bool
	logLevel   string
	logFile    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:          "acad-mcp",
		Short:        "MCP server that draws into a running AutoCAD-compatible application",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}

			cleanup, err := logger.Setup(logger.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				File:   cfg.Log.File,
			})
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return app.ServeMCP(ctx, cfg)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fl.StringVar(&f.backend, "backend", "", "drawing backend: autocad or dryrun")
	fl.StringVar(&f.progID, "prog-id", "", "ActiveX ProgID of the CAD application (default AutoCAD.Application)")
	fl.BoolVar(&f.noLaunch, "no-launch", false, "only attach to a running application, never start one")
	fl.StringVar(&f.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	fl.StringVar(&f.logFile, "log-file", "", "append logs to this file instead of stderr")
	fl.BoolVar(&f.debug, "debug", false, "shorthand for --log-level debug")

	cmd.AddCommand(versionCmd())
	return cmd
}

// resolveConfig loads the config file and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, f rootFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}

	fl := cmd.Flags()
	if fl.Changed("backend") {
		cfg.Backend = f.backend
	}
	if fl.Changed("prog-id") {
		cfg.AutoCAD.ProgID = f.progID
	}
	if fl.Changed("no-launch") {
		cfg.AutoCAD.CreateIfNotExists = !f.noLaunch
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if f.debug {
		cfg.Log.Level = "debug"
	}
	if fl.Changed("log-file") {
		cfg.Log.File = f.logFile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return err
		},
	}
}

// run executes the root command with args; used by tests.
func run(ctx context.Context, args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
