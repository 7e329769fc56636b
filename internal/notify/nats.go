package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/i474232898/city-weather/internal/weather"
)

// SelectionEvent is the message published when the selected city changes.
type SelectionEvent struct {
	City      weather.ResolvedCity `json:"city"`
	Key       string               `json:"key"`
	ChangedAt time.Time            `json:"changedAt"`
}

// NATSPublisher publishes selection changes on a plain NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to url. The connection keeps retrying in the
// background if the server is not up yet.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("city-weather"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

func (p *NATSPublisher) PublishSelection(ctx context.Context, city weather.ResolvedCity) error {
	data, err := json.Marshal(SelectionEvent{
		City:      city,
		Key:       city.Key(),
		ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.conn.Publish(p.subject, data)
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	_ = p.conn.Drain()
}
