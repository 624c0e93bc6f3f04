package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

// BlockRepository is the persistence boundary for block instances. All
// operations are scoped by user id.
type BlockRepository interface {
	// ListBlocksInRange returns blocks whose planned range intersects
	// [start, end), using the coarse filter planned_start < end AND
	// planned_end > start.
	ListBlocksInRange(ctx context.Context, userID string, start, end time.Time) ([]*BlockInstance, error)
	// ListBlocksStartingIn returns blocks with planned_start in [start, end).
	ListBlocksStartingIn(ctx context.Context, userID string, start, end time.Time) ([]*BlockInstance, error)
	GetBlock(ctx context.Context, id string) (*BlockInstance, error)
	InsertBlock(ctx context.Context, block *BlockInstance) (*BlockInstance, error)
	UpdateBlock(ctx context.Context, id string, update BlockUpdate) (*BlockInstance, error)
}

// BlockTypeRepository provides the block-type templates.
type BlockTypeRepository interface {
	// InsertBlockType persists a validated block type and returns it.
	InsertBlockType(ctx context.Context, bt *BlockType) (*BlockType, error)
	GetBlockType(ctx context.Context, id string) (*BlockType, error)
	// ListBlockTypes returns all block types for the user.
	ListBlockTypes(ctx context.Context, userID string) ([]*BlockType, error)
	// ListAutoCreateRecurring returns recurring-enabled block types flagged
	// for automatic instance creation.
	ListAutoCreateRecurring(ctx context.Context, userID string) ([]*BlockType, error)
}

// CalendarRepository exposes imported external calendar events, read-only.
type CalendarRepository interface {
	ListEventsInRange(ctx context.Context, userID string, start, end time.Time) ([]*CalendarEvent, error)
}

// NotificationRepository is the persistence boundary for the notification
// queue. Rows are append-only apart from the sent marker.
type NotificationRepository interface {
	InsertNotifications(ctx context.Context, items []*QueueItem) error
	// ListDue returns unsent items with target_time <= now, ascending by
	// target time.
	ListDue(ctx context.Context, userID string, now time.Time, limit int) ([]*QueueItem, error)
	// ListTargetTimesInRange returns the target times of all queued rows
	// (sent or not) within [start, end] for equality-based dedup.
	ListTargetTimesInRange(ctx context.Context, userID string, start, end time.Time) ([]time.Time, error)
	MarkSent(ctx context.Context, ids []string, at time.Time) error
	// DeleteSentBefore removes sent rows whose sent_at precedes cutoff.
	DeleteSentBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error)
}

// PreferencesRepository reads the current user preferences row.
type PreferencesRepository interface {
	GetPreferences(ctx context.Context, userID string) (*UserPreferences, error)
}
