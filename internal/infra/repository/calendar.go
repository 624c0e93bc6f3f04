package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// CalendarRepository reads imported calendar events from Postgres.
type CalendarRepository struct {
	db *sqlx.DB
}

func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) ListEventsInRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.SelectContext(ctx, &events,
		`SELECT id, user_id, title, start_time, end_time
		 FROM calendar_events
		 WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		 ORDER BY start_time`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}
