package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const sessionURI = "cad://session"

func (s *Server) registerResources() {
	// ── cad://session ──────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		sessionURI,
		"CAD Session",
		mcp.WithResourceDescription("Automation backend, connected application and active document"),
		mcp.WithMIMEType("application/json"),
	), s.handleSessionResource)
}

func (s *Server) handleSessionResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var st any = struct{}{}
	if s.session != nil {
		st = s.session.Status()
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      sessionURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
