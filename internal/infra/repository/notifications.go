package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// NotificationRepository is the Postgres implementation of
// domain.NotificationRepository.
type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) InsertNotifications(ctx context.Context, items []*domain.QueueItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert notifications: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO notification_queue (id, user_id, type, target_time, payload)
			 VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.UserID, item.Type, item.TargetTime, item.Payload)
		if err != nil {
			return fmt.Errorf("insert notification %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert notifications: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListDue(ctx context.Context, userID string, now time.Time, limit int) ([]*domain.QueueItem, error) {
	var items []*domain.QueueItem
	err := r.db.SelectContext(ctx, &items,
		`SELECT id, user_id, type, target_time, payload, sent_at, created_at
		 FROM notification_queue
		 WHERE user_id = $1 AND sent_at IS NULL AND target_time <= $2
		 ORDER BY target_time
		 LIMIT $3`, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due notifications: %w", err)
	}
	return items, nil
}

func (r *NotificationRepository) ListTargetTimesInRange(ctx context.Context, userID string, start, end time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.SelectContext(ctx, &times,
		`SELECT target_time
		 FROM notification_queue
		 WHERE user_id = $1 AND target_time >= $2 AND target_time <= $3`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list queued target times: %w", err)
	}
	return times, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		`UPDATE notification_queue SET sent_at = ? WHERE id IN (?) AND sent_at IS NULL`,
		at, ids)
	if err != nil {
		return fmt.Errorf("build mark sent query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("mark notifications sent: %w", err)
	}
	return nil
}

func (r *NotificationRepository) DeleteSentBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notification_queue
		 WHERE user_id = $1 AND sent_at IS NOT NULL AND sent_at < $2`,
		userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete sent notifications: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted notifications: %w", err)
	}
	return deleted, nil
}
