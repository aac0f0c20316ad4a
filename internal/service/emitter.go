package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ─────────────────────────────────────────────────────────────
// EventEmitter: decouples services from whoever observes them
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for publishing service events.
// Services receive this interface so they can be tested with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// LogEmitter writes every event to a logrus entry at debug level.
type LogEmitter struct {
	Log *logrus.Entry
}

func (e LogEmitter) Emit(_ context.Context, event string, data any) {
	if e.Log == nil {
		return
	}
	e.Log.WithField("event", event).WithField("data", data).Debug("event emitted")
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}
