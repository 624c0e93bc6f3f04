package changefeed

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "blocks:changed:"

// RedisChangeFeed broadcasts block change events over Redis pub/sub. Events
// carry no payload; subscribers react by reconciling from current state, so
// a missed event is corrected by the next one or the periodic tick.
type RedisChangeFeed struct {
	client *redis.Client
}

func NewRedisChangeFeed(client *redis.Client) *RedisChangeFeed {
	return &RedisChangeFeed{client: client}
}

// Publish emits a change event for the user's channel.
func (f *RedisChangeFeed) Publish(ctx context.Context, userID string) error {
	return f.client.Publish(ctx, channelPrefix+userID, "").Err()
}

// Subscribe invokes fn on every change event for the user until the returned
// stop function is called or ctx ends. fn runs on the subscription goroutine
// and must not block.
func (f *RedisChangeFeed) Subscribe(ctx context.Context, userID string, fn func()) (func(), error) {
	sub := f.client.Subscribe(ctx, channelPrefix+userID)

	// Force the SUBSCRIBE round trip so a broken connection fails here
	// rather than silently in the receive loop.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				fn()
			}
		}
	}()

	stop := func() {
		if err := sub.Close(); err != nil {
			slog.Warn("failed to close change feed subscription",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}
	return stop, nil
}
