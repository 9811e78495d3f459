// Package worker runs the background consumers of the tracking event
// stream. The HTTP layer publishes fire-and-forget; consumers here do
// the slower follow-up work (audit logging, per-campaign counters).
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/phishguard/internal/pkg/logger"
	"github.com/ignite/phishguard/internal/tracking"
)

// EventHandler processes one tracking event. Returning an error leaves
// the entry pending for redelivery.
type EventHandler func(ctx context.Context, evt tracking.Event) error

// EventConsumer reads tracking events from the Redis stream via a
// consumer group, so multiple worker replicas share the load and a
// crashed worker's pending entries are redelivered.
type EventConsumer struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string
	handler  EventHandler

	blockFor time.Duration
}

func NewEventConsumer(client *redis.Client, stream, group, consumer string, handler EventHandler) *EventConsumer {
	return &EventConsumer{
		client:   client,
		stream:   stream,
		group:    group,
		consumer: consumer,
		handler:  handler,
		blockFor: 5 * time.Second,
	}
}

// Run consumes until the context is cancelled.
func (c *EventConsumer) Run(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group: %w", err)
	}

	logger.Info("event consumer started", "stream", c.stream, "group", c.group, "consumer", c.consumer)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		res, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{c.stream, ">"},
			Count:    32,
			Block:    c.blockFor,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("read tracking stream", "stream", c.stream, "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *EventConsumer) process(ctx context.Context, msg redis.XMessage) {
	raw, ok := msg.Values["event"].(string)
	if !ok {
		// Malformed entry; ack it so it does not wedge the group.
		logger.Warn("tracking entry missing event field", "id", msg.ID)
		c.ack(ctx, msg.ID)
		return
	}

	var evt tracking.Event
	if err := json.Unmarshal([]byte(raw), &evt); err != nil {
		logger.Warn("tracking entry undecodable", "id", msg.ID, "error", err)
		c.ack(ctx, msg.ID)
		return
	}

	if err := c.handler(ctx, evt); err != nil {
		logger.Error("tracking event handler failed", "id", msg.ID, "type", string(evt.Type), "error", err)
		return // left pending for redelivery
	}
	c.ack(ctx, msg.ID)
}

func (c *EventConsumer) ack(ctx context.Context, id string) {
	if err := c.client.XAck(ctx, c.stream, c.group, id).Err(); err != nil {
		logger.Error("ack tracking entry", "id", id, "error", err)
	}
}

// AuditLogger is the default event handler: it writes one structured
// log line per event and bumps per-campaign daily counters in Redis
// for cheap trend queries.
func AuditLogger(client *redis.Client) EventHandler {
	return func(ctx context.Context, evt tracking.Event) error {
		logger.Info("tracking event",
			"type", string(evt.Type),
			"interaction_id", evt.InteractionID,
			"ip", evt.IPAddress,
		)

		key := fmt.Sprintf("phishguard:counters:%s:%s", evt.Type, evt.Timestamp.UTC().Format("2006-01-02"))
		pipe := client.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 90*24*time.Hour)
		_, err := pipe.Exec(ctx)
		return err
	}
}
