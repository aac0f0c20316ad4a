package mcpserver

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"acad-mcp/internal/cad"
	"acad-mcp/internal/service"
)

// StatusSource reports the state of the automation connection.
type StatusSource interface {
	Status() cad.Status
}

// Server is the MCP server for acad-mcp.
// It exposes drawing tools, a session resource and prompts to AI agents.
type Server struct {
	mcp     *server.MCPServer
	drawing *service.DrawingService
	session StatusSource
	log     *logrus.Entry
}

// Deps holds all dependencies passed from the app layer to the MCP server.
type Deps struct {
	Drawing *service.DrawingService
	Session StatusSource
	Log     *logrus.Entry
	Version string
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	l := deps.Log
	if l == nil {
		l = logrus.NewEntry(logrus.StandardLogger())
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		drawing: deps.Drawing,
		session: deps.Session,
		log:     l,
	}

	s.mcp = server.NewMCPServer(
		"acad-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(callLogger(l)),
		server.WithInstructions("Draw 2D geometry into the model space of the running CAD application. Coordinates are drawing units, angles are degrees."),
	)

	s.registerDrawingTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// MCPServer exposes the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the protocol on stdin/stdout until ctx is done or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve serves the protocol over the given streams.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Info("starting stdio server")
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(s.log.WriterLevel(logrus.ErrorLevel), "", 0))
	return stdio.Listen(ctx, in, out)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func boolPtr(v bool) *bool { return &v }
