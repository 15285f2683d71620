package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medicare-platform/admin-api/pkg/messaging"
)

type RedisBroker struct {
	client *redis.Client
	logger *zerolog.Logger
}

type Config struct {
	URL          string
	MaxRetries   int
	RetryBackoff time.Duration
	PoolSize     int
	MinIdleConns int
}

func NewRedisBroker(config Config, logger *zerolog.Logger) (messaging.Broker, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.MaxRetries = config.MaxRetries
	opts.MinRetryBackoff = config.RetryBackoff
	opts.PoolSize = config.PoolSize
	opts.MinIdleConns = config.MinIdleConns

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBroker{
		client: client,
		logger: logger,
	}, nil
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	sub := b.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				out <- []byte(msg.Payload)
			}
		}
	}()
	return out, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
