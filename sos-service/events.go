package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	alertStatusSent   = "sent"
	alertStatusFailed = "failed"
)

// Publisher is the subset of *nats.Conn used to emit events.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventPublisher emits AlertEvent documents. A nil or unconnected
// publisher drops events silently.
type EventPublisher struct {
	pub     Publisher
	subject string
	log     *slog.Logger
}

func NewEventPublisher(pub Publisher, subject string, log *slog.Logger) *EventPublisher {
	return &EventPublisher{pub: pub, subject: subject, log: log}
}

func connectNATS(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.MaxReconnects(10), nats.Name("sos-service"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}

// PublishAlert reports the outcome of a dispatch attempt. Failures are
// logged and never surface to the caller.
func (p *EventPublisher) PublishAlert(ctx context.Context, contact string, loc Location, sid string, sendErr error) {
	if p == nil || p.pub == nil {
		return
	}

	event := AlertEvent{
		ID:        uuid.NewString(),
		Contact:   contact,
		Latitude:  loc.Latitude.String(),
		Longitude: loc.Longitude.String(),
		Status:    alertStatusSent,
		SID:       sid,
		Timestamp: time.Now().UTC(),
	}
	if sendErr != nil {
		event.Status = alertStatusFailed
		event.Error = providerMessage(sendErr)
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to marshal alert event", "error", err)
		return
	}

	if err = p.pub.Publish(p.subject, data); err != nil {
		p.log.ErrorContext(ctx, "Failed to publish alert event", "subject", p.subject, "error", err)
		return
	}
	p.log.DebugContext(ctx, "Published alert event", "subject", p.subject, "id", event.ID, "status", event.Status)
}
