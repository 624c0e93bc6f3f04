package domain

import "context"

//go:generate mockgen -source=changefeed.go -destination=changefeed_mock.go -package=domain

// ChangeFeed notifies subscribers about mutations to a user's blocks or
// block types. Delivery is best-effort; the interval tick remains the
// authoritative retry path.
type ChangeFeed interface {
	// Subscribe invokes fn on every change event for the user until the
	// returned unsubscribe function is called.
	Subscribe(ctx context.Context, userID string, fn func()) (func(), error)
	// Publish announces a change to the user's blocks or block types.
	Publish(ctx context.Context, userID string) error
}
