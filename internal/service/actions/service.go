package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// DefaultSnoozeMinutes is how far a snoozed notification is pushed when the
// request does not say.
const DefaultSnoozeMinutes = 5

// Service executes the interactive actions attached to delivered
// notifications: starting the block, snoozing the reminder, skipping the
// block.
type Service struct {
	blocks        domain.BlockRepository
	notifications domain.NotificationRepository
	feed          domain.ChangeFeed

	now func() time.Time
}

func NewService(
	blocks domain.BlockRepository,
	notifications domain.NotificationRepository,
	feed domain.ChangeFeed,
) *Service {
	return &Service{
		blocks:        blocks,
		notifications: notifications,
		feed:          feed,
		now:           time.Now,
	}
}

// StartBlock moves a scheduled or paused block into in_progress and stamps
// the actual start time. Any other status rejects the transition.
func (s *Service) StartBlock(ctx context.Context, userID, blockID string) (*domain.BlockInstance, error) {
	block, err := s.ownedBlock(ctx, userID, blockID)
	if err != nil {
		return nil, err
	}

	if block.Status != domain.BlockScheduled && block.Status != domain.BlockPaused {
		return nil, fmt.Errorf("start block in status %s: %w", block.Status, domain.ErrInvalidTransition)
	}

	now := s.now()
	status := domain.BlockInProgress
	updated, err := s.blocks.UpdateBlock(ctx, blockID, domain.BlockUpdate{
		Status:      &status,
		ActualStart: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("start block: %w", err)
	}

	s.publishChange(ctx, userID)

	slog.InfoContext(ctx, "block started from notification",
		slog.String("user_id", userID),
		slog.String("block_id", blockID),
	)
	return updated, nil
}

// SkipBlock marks a block skipped. Completed blocks stay completed.
func (s *Service) SkipBlock(ctx context.Context, userID, blockID string) (*domain.BlockInstance, error) {
	block, err := s.ownedBlock(ctx, userID, blockID)
	if err != nil {
		return nil, err
	}

	if block.Status == domain.BlockCompleted {
		return nil, fmt.Errorf("skip completed block: %w", domain.ErrInvalidTransition)
	}

	status := domain.BlockSkipped
	updated, err := s.blocks.UpdateBlock(ctx, blockID, domain.BlockUpdate{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("skip block: %w", err)
	}

	s.publishChange(ctx, userID)

	slog.InfoContext(ctx, "block skipped from notification",
		slog.String("user_id", userID),
		slog.String("block_id", blockID),
	)
	return updated, nil
}

// SnoozeParams identifies the notification to replay and when.
type SnoozeParams struct {
	Type    domain.NotificationType
	Payload json.RawMessage
	Minutes int
}

// Snooze queues a copy of the notification a few minutes out. The original
// row stays sent; the copy is a fresh queue item.
func (s *Service) Snooze(ctx context.Context, userID string, params SnoozeParams) (*domain.QueueItem, error) {
	if !domain.KnownNotificationType(params.Type) {
		return nil, fmt.Errorf("snooze %q: %w", params.Type, domain.ErrUnknownNotificationType)
	}
	minutes := params.Minutes
	if minutes <= 0 {
		minutes = DefaultSnoozeMinutes
	}

	payload := params.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}

	now := s.now()
	item := &domain.QueueItem{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       params.Type,
		TargetTime: now.Add(time.Duration(minutes) * time.Minute),
		Payload:    payload,
		CreatedAt:  now,
	}
	if err := s.notifications.InsertNotifications(ctx, []*domain.QueueItem{item}); err != nil {
		return nil, fmt.Errorf("snooze notification: %w", err)
	}

	slog.InfoContext(ctx, "notification snoozed",
		slog.String("user_id", userID),
		slog.String("type", string(params.Type)),
		slog.Int("minutes", minutes),
	)
	return item, nil
}

func (s *Service) ownedBlock(ctx context.Context, userID, blockID string) (*domain.BlockInstance, error) {
	block, err := s.blocks.GetBlock(ctx, blockID)
	if err != nil {
		return nil, fmt.Errorf("get block: %w", err)
	}
	if block.UserID != userID {
		// Another user's block is indistinguishable from a missing one.
		return nil, domain.ErrBlockNotFound
	}
	return block, nil
}

func (s *Service) publishChange(ctx context.Context, userID string) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to publish change event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
