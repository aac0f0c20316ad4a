package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"acad-mcp/internal/domain"
)

// drawingAnnotation marks a tool that adds geometry to an external application.
func drawingAnnotation(title string) mcp.ToolOption {
	return mcp.WithToolAnnotation(mcp.ToolAnnotation{
		Title:           title,
		ReadOnlyHint:    boolPtr(false),
		DestructiveHint: boolPtr(false),
		IdempotentHint:  boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	})
}

func (s *Server) registerDrawingTools() {
	s.mcp.AddTool(mcp.NewTool("draw_line",
		mcp.WithDescription("Draw a line in AutoCAD from (x1,y1) to (x2,y2)."),
		mcp.WithNumber("x1", mcp.Description("Start X"), mcp.Required()),
		mcp.WithNumber("y1", mcp.Description("Start Y"), mcp.Required()),
		mcp.WithNumber("x2", mcp.Description("End X"), mcp.Required()),
		mcp.WithNumber("y2", mcp.Description("End Y"), mcp.Required()),
		drawingAnnotation("Draw line"),
	), s.handleDrawLine)

	s.mcp.AddTool(mcp.NewTool("draw_polyline",
		mcp.WithDescription("Draw a polyline through given points: a list of [x, y] pairs."),
		mcp.WithArray("points",
			mcp.Description("Ordered vertices, e.g. [[0,0],[1,1],[2,0]]. At least 2 points."),
			mcp.Items(map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "number"},
				"minItems": 2,
				"maxItems": 2,
			}),
			mcp.Required(),
		),
		drawingAnnotation("Draw polyline"),
	), s.handleDrawPolyline)

	s.mcp.AddTool(mcp.NewTool("draw_rectangle",
		mcp.WithDescription("Draw a rectangle given two opposite corners (x1,y1) and (x2,y2)."),
		mcp.WithNumber("x1", mcp.Description("First corner X"), mcp.Required()),
		mcp.WithNumber("y1", mcp.Description("First corner Y"), mcp.Required()),
		mcp.WithNumber("x2", mcp.Description("Opposite corner X"), mcp.Required()),
		mcp.WithNumber("y2", mcp.Description("Opposite corner Y"), mcp.Required()),
		drawingAnnotation("Draw rectangle"),
	), s.handleDrawRectangle)

	s.mcp.AddTool(mcp.NewTool("draw_circle",
		mcp.WithDescription("Draw a circle in AutoCAD with center (x, y) and radius r."),
		mcp.WithNumber("x", mcp.Description("Center X"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Center Y"), mcp.Required()),
		mcp.WithNumber("radius", mcp.Description("Radius"), mcp.Required()),
		drawingAnnotation("Draw circle"),
	), s.handleDrawCircle)

	s.mcp.AddTool(mcp.NewTool("draw_ellipse",
		mcp.WithDescription("Draw an ellipse with center (x, y), major axis length, and minor axis length."),
		mcp.WithNumber("x", mcp.Description("Center X"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Center Y"), mcp.Required()),
		mcp.WithNumber("major", mcp.Description("Major axis length, measured along +X from the center"), mcp.Required()),
		mcp.WithNumber("minor", mcp.Description("Minor axis length"), mcp.Required()),
		drawingAnnotation("Draw ellipse"),
	), s.handleDrawEllipse)

	s.mcp.AddTool(mcp.NewTool("draw_arc",
		mcp.WithDescription("Draw an arc with center (x, y), radius r, from start_angle to end_angle (in degrees)."),
		mcp.WithNumber("x", mcp.Description("Center X"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Center Y"), mcp.Required()),
		mcp.WithNumber("radius", mcp.Description("Radius"), mcp.Required()),
		mcp.WithNumber("start_angle", mcp.Description("Start angle in degrees, counter-clockwise from +X"), mcp.Required()),
		mcp.WithNumber("end_angle", mcp.Description("End angle in degrees"), mcp.Required()),
		drawingAnnotation("Draw arc"),
	), s.handleDrawArc)
}

// requireFloats reads the named numeric arguments in order.
func requireFloats(req mcp.CallToolRequest, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := req.RequireFloat(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ── Handlers ────────────────────────────────────────────────

func (s *Server) handleDrawLine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	msg, err := s.drawing.DrawLine(ctx, domain.Point{X: v[0], Y: v[1]}, domain.Point{X: v[2], Y: v[3]})
	if err != nil {
		return nil, err
	}
	return textResult(msg), nil
}

func (s *Server) handleDrawPolyline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pts, err := parsePoints(req.GetArguments()["points"])
	if err != nil {
		return nil, err
	}
	msg, err := s.drawing.DrawPolyline(ctx, pts)
	if err != nil {
		return nil, err
	}
	return textResult(msg), nil
}

func (s *Server) handleDrawRectangle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	msg, err := s.drawing.DrawRectangle(ctx, domain.Point{X: v[0], Y: v[1]}, domain.Point{X: v[2], Y: v[3]})
	if err != nil {
		return nil, err
	}
	return textResult(msg), nil
}

func (s *Server) handleDrawCircle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "x", "y", "radius")
	if err != nil {
		return nil, err
	}
	msg, err := s.drawing.DrawCircle(ctx, domain.Point{X: v[0], Y: v[1]}, v[2])
	if err != nil {
		return nil, err
	}
	return textResult(msg), nil
}

func (s *Server) handleDrawEllipse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "x", "y", "major", "minor")
	if err != nil {
		return nil, err
	}
	msg, err := s.drawing.DrawEllipse(ctx, domain.Point{X: v[0], Y: v[1]}, v[2], v[3])
	if err != nil {
		return nil, err
	}
	return textResult(msg), nil
}

func (s *Server) handleDrawArc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := requireFloats(req, "x", "y", "radius", "start_angle", "end_angle")
	if err != nil {
		return nil, err
	}
	msg, err := s.drawing.DrawArc(ctx, domain.Point{X: v[0], Y: v[1]}, v[2], v[3], v[4])
	if err != nil {
		return nil, err
	}
	return textResult(msg), nil
}
