package changefeed

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/planner-block-scheduling/internal/testutil"
)

func TestPublishReachesSubscriber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	feed := NewRedisChangeFeed(client)

	received := make(chan struct{}, 1)
	stop, err := feed.Subscribe(ctx, "user-1", func() {
		select {
		case received <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer stop()

	if err := feed.Publish(ctx, "user-1"); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber never received the change event")
	}
}

func TestSubscriberScopedToUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	feed := NewRedisChangeFeed(client)

	received := make(chan struct{}, 1)
	stop, err := feed.Subscribe(ctx, "user-1", func() {
		received <- struct{}{}
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer stop()

	if err := feed.Publish(ctx, "user-2"); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-received:
		t.Fatal("subscriber received another user's event")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestStopEndsDelivery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	feed := NewRedisChangeFeed(client)

	received := make(chan struct{}, 4)
	stop, err := feed.Subscribe(ctx, "user-1", func() {
		received <- struct{}{}
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	stop()

	if err := feed.Publish(ctx, "user-1"); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-received:
		t.Fatal("subscriber received event after stop")
	case <-time.After(500 * time.Millisecond):
	}
}
