package repository

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Connect opens the Postgres pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS block_types (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	default_duration_minutes INTEGER NOT NULL DEFAULT 60,
	recurring_enabled BOOLEAN NOT NULL DEFAULT FALSE,
	recurring_days_of_week JSONB NOT NULL DEFAULT '[]',
	recurring_time_of_day TEXT,
	recurring_auto_create BOOLEAN NOT NULL DEFAULT FALSE,
	recurring_weeks_in_advance INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_block_types_user ON block_types (user_id);

CREATE TABLE IF NOT EXISTS block_instances (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	block_type_id TEXT NOT NULL REFERENCES block_types (id),
	planned_start TIMESTAMPTZ NOT NULL,
	planned_end TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'scheduled',
	actual_start TIMESTAMPTZ,
	actual_end TIMESTAMPTZ,
	paused_until TIMESTAMPTZ,
	pause_reason TEXT,
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_block_instances_user_range
	ON block_instances (user_id, planned_start, planned_end);

CREATE TABLE IF NOT EXISTS calendar_events (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_calendar_events_user_range
	ON calendar_events (user_id, start_time, end_time);

CREATE TABLE IF NOT EXISTS user_preferences (
	user_id TEXT PRIMARY KEY,
	notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
	notification_lead_time_minutes INTEGER,
	notification_sound_enabled BOOLEAN NOT NULL DEFAULT TRUE,
	standup_time TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notification_queue (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	type TEXT NOT NULL,
	target_time TIMESTAMPTZ NOT NULL,
	payload JSONB NOT NULL DEFAULT 'null',
	sent_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notification_queue_user_target
	ON notification_queue (user_id, target_time);
CREATE INDEX IF NOT EXISTS idx_notification_queue_due
	ON notification_queue (user_id, target_time) WHERE sent_at IS NULL;
`

// Migrate applies the schema. Statements are idempotent, so running it on
// every startup is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	slog.InfoContext(ctx, "database schema applied")
	return nil
}
