package tracking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestPublisher(t *testing.T) (*Publisher, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewPublisher(client, "phishguard:tracking"), client
}

func TestPublisherAppendsToStream(t *testing.T) {
	p, client := setupTestPublisher(t)

	p.Publish(Event{
		Type:          EventClicked,
		InteractionID: 7,
		IPAddress:     "203.0.113.9",
		UserAgent:     "curl/8.0",
	})

	var entries []redis.XMessage
	deadline := time.Now().Add(2 * time.Second)
	for {
		var err error
		entries, err = client.XRange(context.Background(), "phishguard:tracking", "-", "+").Result()
		if err != nil {
			t.Fatalf("xrange: %v", err)
		}
		if len(entries) > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(entries) != 1 {
		t.Fatalf("stream entries = %d, want 1", len(entries))
	}

	raw, ok := entries[0].Values["event"].(string)
	if !ok {
		t.Fatalf("entry missing event field: %v", entries[0].Values)
	}
	var evt Event
	if err := json.Unmarshal([]byte(raw), &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if evt.Type != EventClicked || evt.InteractionID != 7 {
		t.Errorf("event = %+v", evt)
	}
	if evt.ID == "" {
		t.Errorf("event ID not assigned")
	}
	if evt.Timestamp.IsZero() {
		t.Errorf("event timestamp not stamped")
	}
}

func TestPublisherNilSafe(t *testing.T) {
	var p *Publisher
	p.Publish(Event{Type: EventOpened, InteractionID: 1}) // must not panic

	p = NewPublisher(nil, "phishguard:tracking")
	p.Publish(Event{Type: EventOpened, InteractionID: 1})
}
