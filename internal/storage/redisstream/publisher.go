// Package redisstream mirrors account mutations as events on a Redis stream.
package redisstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tinoosan/accounts/internal/registry"
)

// Publisher implements persist.Sink by appending events with XADD.
type Publisher struct {
	client *redis.Client
	stream string
	maxLen int64
	now    func() time.Time
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{client: client, stream: stream, now: time.Now}
}

// Stream returns the stream name events are written to.
func (p *Publisher) Stream() string { return p.stream }

func (p *Publisher) CreateEntry(ctx context.Context, a registry.Account) error {
	return p.Publish(ctx, AccountCreated, AccountEvent{AccountID: a.ID, Attributes: a.Attributes.Clone()})
}

func (p *Publisher) UpdateEntry(ctx context.Context, a registry.Account) error {
	return p.Publish(ctx, AccountUpdated, AccountEvent{AccountID: a.ID, Attributes: a.Attributes.Clone()})
}

func (p *Publisher) DeleteEntry(ctx context.Context, id string) error {
	return p.Publish(ctx, AccountDeleted, AccountDeletedEvent{AccountID: id})
}

// Ready pings Redis.
func (p *Publisher) Ready(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	eventJSON, err := p.encode(eventType, data)
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (p *Publisher) encode(eventType string, data any) ([]byte, error) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: p.now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return eventJSON, nil
}
