package service

import (
	"context"
	"fmt"

	"acad-mcp/internal/cad"
	"acad-mcp/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Drawing Service: primitive translation onto a cad.Surface
// ─────────────────────────────────────────────────────────────

// EventEntityAdded is emitted after the surface accepted new geometry.
const EventEntityAdded = "cad:entity-added"

// EntityAdded is the payload of EventEntityAdded.
type EntityAdded struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DrawingService turns drawing requests into surface calls and status messages.
type DrawingService struct {
	surface cad.Surface
	emitter EventEmitter
}

// NewDrawingService creates a DrawingService.
func NewDrawingService(surface cad.Surface, emitter EventEmitter) *DrawingService {
	return &DrawingService{surface: surface, emitter: emitter}
}

// DrawLine adds a segment from a to b.
func (s *DrawingService) DrawLine(ctx context.Context, a, b domain.Point) (string, error) {
	if err := s.surface.AddLine(ctx, a, b); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Drew line from %s to %s", a, b)
	return s.done(ctx, "line", msg), nil
}

// DrawPolyline adds one connected polyline through all vertices in order.
func (s *DrawingService) DrawPolyline(ctx context.Context, vertices []domain.Point) (string, error) {
	if len(vertices) < 2 {
		return "", domain.ErrTooFewPoints
	}
	if err := s.surface.AddPolyline(ctx, vertices); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Drew polyline through %d points.", len(vertices))
	return s.done(ctx, "polyline", msg), nil
}

// DrawRectangle adds the four sides of the axis-aligned rectangle with
// opposite corners a and b, as separate line segments.
func (s *DrawingService) DrawRectangle(ctx context.Context, a, b domain.Point) (string, error) {
	corners := domain.RectangleCorners(a, b)
	for i := range corners {
		if err := s.surface.AddLine(ctx, corners[i], corners[(i+1)%len(corners)]); err != nil {
			return "", err
		}
	}
	msg := fmt.Sprintf("Drew rectangle with corners (%s,%s) and (%s,%s).",
		domain.FormatNumber(a.X), domain.FormatNumber(a.Y),
		domain.FormatNumber(b.X), domain.FormatNumber(b.Y))
	return s.done(ctx, "rectangle", msg), nil
}

// DrawCircle adds a circle. The radius is passed through unchecked.
func (s *DrawingService) DrawCircle(ctx context.Context, center domain.Point, radius float64) (string, error) {
	if err := s.surface.AddCircle(ctx, center, radius); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Drew circle at %s with radius %s.", center, domain.FormatNumber(radius))
	return s.done(ctx, "circle", msg), nil
}

// DrawEllipse adds an ellipse whose major axis lies along +X.
func (s *DrawingService) DrawEllipse(ctx context.Context, center domain.Point, major, minor float64) (string, error) {
	// Relative vector from the center, not the absolute endpoint (x+major, y):
	// AddEllipse reads MajorAxis as a vector.
	axis := domain.Point{X: major, Y: 0}
	if err := s.surface.AddEllipse(ctx, center, axis, domain.EllipseRatio(major, minor)); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Drew ellipse at %s with major %s and minor %s.",
		center, domain.FormatNumber(major), domain.FormatNumber(minor))
	return s.done(ctx, "ellipse", msg), nil
}

// DrawArc adds a counter-clockwise arc. Angles are in degrees.
func (s *DrawingService) DrawArc(ctx context.Context, center domain.Point, radius, startDeg, endDeg float64) (string, error) {
	if err := s.surface.AddArc(ctx, center, radius, domain.Radians(startDeg), domain.Radians(endDeg)); err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Drew arc at %s with radius %s from %s° to %s°.",
		center, domain.FormatNumber(radius), domain.FormatNumber(startDeg), domain.FormatNumber(endDeg))
	return s.done(ctx, "arc", msg), nil
}

func (s *DrawingService) done(ctx context.Context, kind, msg string) string {
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventEntityAdded, EntityAdded{Kind: kind, Message: msg})
	}
	return msg
}
