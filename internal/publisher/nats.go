// Package publisher bridges store events onto the NATS bus.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/alegonzalezz/ATS/internal/store"
)

// NATSClient interface to allow mocking
type NATSClient interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher implements store.EventPublisher
type NATSPublisher struct {
	nc NATSClient
}

// NewNATSPublisher creates a new publisher
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{nc: conn}
}

// PublishCandidateEvent publishes a candidate lifecycle event. The event
// type doubles as the subject, e.g. candidate.created.
func (p *NATSPublisher) PublishCandidateEvent(ctx context.Context, event store.CandidateEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.nc.Publish(event.Type, data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}
