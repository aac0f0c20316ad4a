// Package cad holds the drawing surface abstraction and its backends: the
// ActiveX automation binding for AutoCAD-compatible hosts and an in-memory
// recorder.
package cad

import (
	"context"

	"acad-mcp/internal/domain"
)

// Surface is the minimal set of model-space operations the drawing tools need.
// Angles are radians. Implementations report automation failures as errors and
// never validate geometry themselves.
type Surface interface {
	AddLine(ctx context.Context, start, end domain.Point) error
	AddPolyline(ctx context.Context, vertices []domain.Point) error
	AddCircle(ctx context.Context, center domain.Point, radius float64) error
	// AddEllipse takes the major axis as a vector relative to center.
	AddEllipse(ctx context.Context, center, majorAxis domain.Point, ratio float64) error
	AddArc(ctx context.Context, center domain.Point, radius, startAngle, endAngle float64) error
}

// Session is a Surface with a lifecycle and an observable connection status.
type Session interface {
	Surface
	Status() Status
	Close() error
}

// Status is a point-in-time snapshot of the automation connection.
type Status struct {
	Backend     string `json:"backend"`
	ProgID      string `json:"progId,omitempty"`
	Connected   bool   `json:"connected"`
	Application string `json:"application,omitempty"`
	Version     string `json:"version,omitempty"`
	Document    string `json:"document,omitempty"`
	LastError   string `json:"lastError,omitempty"`
}
