package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("sketch_part",
		mcp.WithPromptDescription("Plan and draw a 2D part outline using lines, arcs, circles and ellipses"),
		mcp.WithArgument("description",
			mcp.ArgumentDescription("What the part looks like, with dimensions"),
			mcp.RequiredArgument(),
		),
	), s.handleSketchPartPrompt)
}

func (s *Server) handleSketchPartPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	desc := req.Params.Arguments["description"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Sketch part: %s", desc),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Draw this part in the CAD model space: %s

Steps:
1. Read the cad://session resource to confirm an application is connected.
2. Work out every vertex in drawing units before drawing. Put the part's lower-left corner at (0, 0) unless told otherwise.
3. Use draw_rectangle for rectangular outlines and draw_polyline for other straight-edged outlines (list vertices in order, repeat the first vertex to close it).
4. Use draw_circle for holes, draw_arc for fillets and rounded ends (angles in degrees, counter-clockwise from +X), draw_ellipse for slots with elliptical ends.
5. Report the list of entities you drew with their key dimensions.`, desc),
				},
			},
		},
	}, nil
}
