// Package event publishes employee lifecycle events after a mutation commits.
//
// Only in-process publishers exist today. A broker-backed publisher would
// implement Publisher and be selected in cmd/server.
package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mvaleed/personnel/internal/domain"
)

// Publisher is the interface for publishing domain events.
type Publisher interface {
	// Publish delivers a single event. Failures are reported, never retried here.
	Publish(ctx context.Context, event domain.Event) error

	// Close releases publisher resources.
	Close() error
}

// LoggingPublisher writes every event to the structured log.
type LoggingPublisher struct {
	logger *slog.Logger
}

func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "event published",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.Int64("employee_id", event.EmployeeID),
		slog.String("data", string(data)),
	)
	return nil
}

func (p *LoggingPublisher) Close() error {
	return nil
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(ctx context.Context, event domain.Event) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}

// RecordingPublisher keeps published events in memory, in order.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Types returns the types of all recorded events.
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

func (p *RecordingPublisher) Close() error {
	return nil
}
