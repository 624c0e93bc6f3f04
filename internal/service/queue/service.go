// Package queue owns the persisted notification queue: enqueue, due
// listing, sent marking, and the reconciliation that inserts only
// notifications whose target time is not already queued. The queue table is
// the single source of truth for what has been scheduled or sent; the pure
// scheduler's output is never trusted as persisted.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/notify"
)

const (
	DefaultLookaheadMinutes = 60
	defaultDueLimit         = 100
	defaultCleanupDays      = 30
)

type Service struct {
	notifications domain.NotificationRepository
	preferences   domain.PreferencesRepository
	metrics       *metrics.SchedulingMetrics

	now func() time.Time
}

func NewService(
	notifications domain.NotificationRepository,
	preferences domain.PreferencesRepository,
	schedulingMetrics *metrics.SchedulingMetrics,
) *Service {
	return &Service{
		notifications: notifications,
		preferences:   preferences,
		metrics:       schedulingMetrics,
		now:           time.Now,
	}
}

// Enqueue persists candidate notifications as queue rows. Empty input is a
// no-op.
func (s *Service) Enqueue(ctx context.Context, userID string, notifications []*domain.ScheduledNotification) error {
	if len(notifications) == 0 {
		return nil
	}

	items := make([]*domain.QueueItem, 0, len(notifications))
	for _, n := range notifications {
		payload, err := domain.MarshalPayload(n.Payload)
		if err != nil {
			return err
		}
		id := n.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, &domain.QueueItem{
			ID:         id,
			UserID:     userID,
			Type:       n.Type,
			TargetTime: n.TargetTime,
			Payload:    payload,
			CreatedAt:  s.now().UTC(),
		})
	}

	if err := s.notifications.InsertNotifications(ctx, items); err != nil {
		return fmt.Errorf("enqueue notifications: %w", err)
	}

	return nil
}

// ListDue returns unsent items whose target time has passed, ascending by
// target time.
func (s *Service) ListDue(ctx context.Context, userID string, now time.Time) ([]*domain.QueueItem, error) {
	items, err := s.notifications.ListDue(ctx, userID, now, defaultDueLimit)
	if err != nil {
		return nil, fmt.Errorf("list due notifications: %w", err)
	}
	return items, nil
}

// MarkSent stamps the given rows sent. Empty input is a no-op.
func (s *Service) MarkSent(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.notifications.MarkSent(ctx, ids, s.now().UTC()); err != nil {
		return fmt.Errorf("mark notifications sent: %w", err)
	}
	return nil
}

// ScheduleBlocks reconciles the desired notification set for the blocks
// into the queue. Candidates are computed for [now, now+lookahead]; a
// candidate is inserted only when no queued row already has its exact
// target time. The dedup is intentionally coarse equality: the pure
// scheduler is deterministic, so unchanged inputs reproduce identical
// target times and are skipped, while a moved block or changed lead time
// produces new target times that insert correctly.
func (s *Service) ScheduleBlocks(ctx context.Context, userID string, blocks []*domain.BlockInstance, now time.Time, lookahead time.Duration, typeMeta map[string]domain.BlockTypeMeta) error {
	if lookahead <= 0 {
		lookahead = DefaultLookaheadMinutes * time.Minute
	}
	cutoff := now.Add(lookahead)

	queued, err := s.notifications.ListTargetTimesInRange(ctx, userID, now, cutoff)
	if err != nil {
		return fmt.Errorf("list queued target times: %w", err)
	}
	queuedSet := make(map[string]struct{}, len(queued))
	for _, t := range queued {
		queuedSet[targetKey(t)] = struct{}{}
	}

	prefs, err := s.preferences.GetPreferences(ctx, userID)
	if err != nil {
		return fmt.Errorf("get preferences: %w", err)
	}

	standupTime := ""
	if prefs != nil && prefs.StandupTime != nil {
		standupTime = *prefs.StandupTime
	}

	candidates := notify.Build(notify.Input{
		UserID:                 userID,
		Blocks:                 blocks,
		Now:                    now,
		UpcomingWarningMinutes: notify.DefaultUpcomingWarningMinutes,
		StandupTime:            standupTime,
		Preferences:            prefs,
		TypeMeta:               typeMeta,
	})

	fresh := make([]*domain.ScheduledNotification, 0, len(candidates))
	for _, c := range candidates {
		if !c.TargetTime.After(now) {
			continue
		}
		if c.TargetTime.After(cutoff) {
			continue
		}
		if _, exists := queuedSet[targetKey(c.TargetTime)]; exists {
			continue
		}
		fresh = append(fresh, c)
	}

	if s.metrics != nil {
		s.metrics.RecordReconciliation(ctx, len(candidates), len(fresh))
	}

	slog.DebugContext(ctx, "notification reconciliation",
		slog.String("user_id", userID),
		slog.Int("candidates", len(candidates)),
		slog.Int("inserted", len(fresh)),
		slog.Int("already_queued", len(queued)),
	)

	return s.Enqueue(ctx, userID, fresh)
}

// CleanupOld deletes sent rows older than daysToKeep. Pending rows are
// never touched.
func (s *Service) CleanupOld(ctx context.Context, userID string, daysToKeep int) (int64, error) {
	if daysToKeep <= 0 {
		daysToKeep = defaultCleanupDays
	}
	cutoff := s.now().UTC().AddDate(0, 0, -daysToKeep)

	deleted, err := s.notifications.DeleteSentBefore(ctx, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup sent notifications: %w", err)
	}

	if deleted > 0 {
		slog.InfoContext(ctx, "old notifications cleaned up",
			slog.String("user_id", userID),
			slog.Int64("deleted", deleted),
		)
	}

	return deleted, nil
}

// targetKey normalizes a target time for equality-based dedup.
func targetKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
