package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/phishguard/internal/tracking"
)

func setupConsumerTest(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func publishEvent(t *testing.T, client *redis.Client, stream string, evt tracking.Event) {
	t.Helper()
	body, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	err = client.XAdd(context.Background(), &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{"event": string(body)},
	}).Err()
	if err != nil {
		t.Fatalf("xadd: %v", err)
	}
}

func TestEventConsumerProcessesAndAcks(t *testing.T) {
	client, _ := setupConsumerTest(t)
	const stream = "phishguard:tracking"

	var mu sync.Mutex
	var got []tracking.Event
	handler := func(_ context.Context, evt tracking.Event) error {
		mu.Lock()
		got = append(got, evt)
		mu.Unlock()
		return nil
	}

	c := NewEventConsumer(client, stream, "workers", "w1", handler)
	c.blockFor = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	publishEvent(t, client, stream, tracking.Event{
		ID: "e1", Type: tracking.EventClicked, InteractionID: 3, Timestamp: time.Now().UTC(),
	})
	publishEvent(t, client, stream, tracking.Event{
		ID: "e2", Type: tracking.EventOpened, InteractionID: 4, Timestamp: time.Now().UTC(),
	})

	deadline := time.Now().Add(3 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("processed = %d, want 2", len(got))
	}
	if got[0].Type != tracking.EventClicked || got[0].InteractionID != 3 {
		t.Errorf("got[0] = %+v", got[0])
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Errorf("consumer did not stop on cancel")
	}

	pending, err := client.XPending(context.Background(), stream, "workers").Result()
	if err != nil {
		t.Fatalf("xpending: %v", err)
	}
	if pending.Count != 0 {
		t.Errorf("pending entries = %d, want 0 (all acked)", pending.Count)
	}
}

func TestEventConsumerSkipsMalformedEntries(t *testing.T) {
	client, _ := setupConsumerTest(t)
	const stream = "phishguard:tracking"

	var mu sync.Mutex
	var got []tracking.Event
	c := NewEventConsumer(client, stream, "workers", "w1", func(_ context.Context, evt tracking.Event) error {
		mu.Lock()
		got = append(got, evt)
		mu.Unlock()
		return nil
	})
	c.blockFor = 50 * time.Millisecond

	err := client.XAdd(context.Background(), &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{"event": "{not json"},
	}).Err()
	if err != nil {
		t.Fatalf("xadd: %v", err)
	}
	publishEvent(t, client, stream, tracking.Event{
		ID: "ok", Type: tracking.EventCredentialsCaptured, InteractionID: 9, Timestamp: time.Now().UTC(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	go c.Run(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= 1 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].Type != tracking.EventCredentialsCaptured {
		t.Fatalf("got = %+v, want only the valid event", got)
	}
}
