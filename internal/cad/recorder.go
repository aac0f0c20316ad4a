package cad

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"acad-mcp/internal/domain"
)

type EntityKind string

const (
	KindLine     EntityKind = "line"
	KindPolyline EntityKind = "polyline"
	KindCircle   EntityKind = "circle"
	KindEllipse  EntityKind = "ellipse"
	KindArc      EntityKind = "arc"
)

// Entity is one recorded surface call.
type Entity struct {
	Kind       EntityKind     `json:"kind"`
	Points     []domain.Point `json:"points"` // line: start,end; polyline: vertices; others: center
	MajorAxis  domain.Point   `json:"majorAxis"`
	Radius     float64        `json:"radius,omitempty"`
	Ratio      float64        `json:"ratio,omitempty"`
	StartAngle float64        `json:"startAngle,omitempty"`
	EndAngle   float64        `json:"endAngle,omitempty"`
}

// Recorder is an in-memory Surface. It backs the dryrun backend and tests.
type Recorder struct {
	mu       sync.Mutex
	entities []Entity
	log      *logrus.Entry

	// Err, when set, is returned by every Add call instead of recording.
	Err error
}

// NewRecorder returns a Recorder. log may be nil.
func NewRecorder(log *logrus.Entry) *Recorder {
	return &Recorder{log: log}
}

func (r *Recorder) AddLine(ctx context.Context, start, end domain.Point) error {
	return r.record(ctx, Entity{Kind: KindLine, Points: []domain.Point{start, end}})
}

func (r *Recorder) AddPolyline(ctx context.Context, vertices []domain.Point) error {
	pts := make([]domain.Point, len(vertices))
	copy(pts, vertices)
	return r.record(ctx, Entity{Kind: KindPolyline, Points: pts})
}

func (r *Recorder) AddCircle(ctx context.Context, center domain.Point, radius float64) error {
	return r.record(ctx, Entity{Kind: KindCircle, Points: []domain.Point{center}, Radius: radius})
}

func (r *Recorder) AddEllipse(ctx context.Context, center, majorAxis domain.Point, ratio float64) error {
	return r.record(ctx, Entity{Kind: KindEllipse, Points: []domain.Point{center}, MajorAxis: majorAxis, Ratio: ratio})
}

func (r *Recorder) AddArc(ctx context.Context, center domain.Point, radius, startAngle, endAngle float64) error {
	return r.record(ctx, Entity{
		Kind:       KindArc,
		Points:     []domain.Point{center},
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
	})
}

func (r *Recorder) record(ctx context.Context, e Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.entities = append(r.entities, e)
	if r.log != nil {
		r.log.WithFields(logrus.Fields{"kind": e.Kind, "points": len(e.Points)}).Debug("entity recorded")
	}
	return nil
}

// Entities returns a copy of everything recorded so far.
func (r *Recorder) Entities() []Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

func (r *Recorder) reset() {
	r.mu.Lock()
	r.entities = nil
	r.mu.Unlock()
}

func (r *Recorder) Status() Status {
	return Status{Backend: "dryrun", Connected: true, Application: "recorder"}
}

// Close logs how many entities the session recorded and drops them.
func (r *Recorder) Close() error {
	if r.log != nil {
		r.log.WithField("entities", len(r.Entities())).Info("dry run finished")
	}
	r.reset()
	return nil
}
