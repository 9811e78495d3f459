package tracking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/phishguard/internal/pkg/logger"
)

// EventType identifies a tracking event on the stream.
type EventType string

const (
	EventOpened              EventType = "email_opened"
	EventClicked             EventType = "link_clicked"
	EventCredentialsCaptured EventType = "credentials_captured"
)

// Event is the payload published for each recorded interaction. It
// carries identifiers only; captured credentials never leave the
// credential log.
type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	InteractionID int64     `json:"interaction_id"`
	IPAddress     string    `json:"ip_address,omitempty"`
	UserAgent     string    `json:"user_agent,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher emits tracking events onto a Redis stream for downstream
// consumers (reporting, SIEM forwarding). Publishing is best effort:
// a nil Publisher or a Redis outage never affects the HTTP response
// the recipient sees.
type Publisher struct {
	client *redis.Client
	stream string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

// Publish fills in the event's ID and timestamp and appends it to the
// stream asynchronously. Failures are logged and dropped.
func (p *Publisher) Publish(evt Event) {
	if p == nil || p.client == nil {
		return
	}
	evt.ID = uuid.NewString()
	evt.Timestamp = time.Now().UTC()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		body, err := json.Marshal(evt)
		if err != nil {
			logger.Error("tracking: marshal event", "error", err)
			return
		}
		err = p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]interface{}{"event": string(body)},
		}).Err()
		if err != nil {
			logger.Error("tracking: publish event", "stream", p.stream, "type", string(evt.Type), "error", err)
		}
	}()
}
