package app

import (
	"context"
	"fmt"

	"acad-mcp/internal/buildinfo"
	"acad-mcp/internal/cad"
	"acad-mcp/internal/config"
	"acad-mcp/internal/logger"
	mcpserver "acad-mcp/internal/mcp"
	"acad-mcp/internal/service"
)

// OpenSession creates the drawing backend selected by cfg.
func OpenSession(cfg config.Config) (cad.Session, error) {
	switch cfg.Backend {
	case config.BackendDryRun:
		return cad.NewRecorder(logger.Named("dryrun")), nil
	case config.BackendAutoCAD:
		app, err := cad.Open(cad.AutomationConfig{
			ProgID:            cfg.AutoCAD.ProgID,
			CreateIfNotExists: cfg.AutoCAD.CreateIfNotExists,
			Visible:           cfg.AutoCAD.Visible,
		}, logger.Named("cad"))
		if err != nil {
			return nil, fmt.Errorf("open automation backend (use --backend %s on hosts without COM): %w", config.BackendDryRun, err)
		}
		return app, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// NewServer wires the drawing service and MCP server around an open session.
func NewServer(sess cad.Session) *mcpserver.Server {
	drawing := service.NewDrawingService(sess, service.LogEmitter{Log: logger.Named("events")})
	return mcpserver.New(mcpserver.Deps{
		Drawing: drawing,
		Session: sess,
		Log:     logger.Named("mcp"),
		Version: buildinfo.Version,
	})
}

// ServeMCP runs the MCP server on stdin/stdout until ctx is cancelled or the
// client closes stdin.
func ServeMCP(ctx context.Context, cfg config.Config) error {
	log := logger.Named("app")

	sess, err := OpenSession(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.WithError(err).Warn("close session")
		}
	}()

	log.WithField("backend", cfg.Backend).Info("starting standalone stdio server")
	if err := NewServer(sess).ServeStdio(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
