package domain

import (
	"regexp"
	"strings"
	"time"
)

// BlockStatus tracks the lifecycle of a block instance. Transitions are
// driven by user actions; the scheduling core only reads them.
type BlockStatus string

const (
	BlockScheduled  BlockStatus = "scheduled"
	BlockInProgress BlockStatus = "in_progress"
	BlockPaused     BlockStatus = "paused"
	BlockCompleted  BlockStatus = "completed"
	BlockSkipped    BlockStatus = "skipped"
)

// BlockInstance is one concrete scheduled occurrence of a block type.
type BlockInstance struct {
	ID           string      `db:"id"`
	UserID       string      `db:"user_id"`
	BlockTypeID  string      `db:"block_type_id"`
	PlannedStart time.Time   `db:"planned_start"`
	PlannedEnd   time.Time   `db:"planned_end"`
	Status       BlockStatus `db:"status"`
	ActualStart  *time.Time  `db:"actual_start"`
	ActualEnd    *time.Time  `db:"actual_end"`
	PausedUntil  *time.Time  `db:"paused_until"`
	PauseReason  *string     `db:"pause_reason"`
	Notes        *string     `db:"notes"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

// PlannedRange returns the planned window of the block.
func (b *BlockInstance) PlannedRange() TimeRange {
	return TimeRange{Start: b.PlannedStart, End: b.PlannedEnd}
}

// BlockUpdate carries the mutable fields of a block instance. Nil fields
// are left untouched.
type BlockUpdate struct {
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	Status       *BlockStatus
	ActualStart  *time.Time
	ActualEnd    *time.Time
	PausedUntil  *time.Time
	PauseReason  *string
	Notes        *string
}

// BlockType is the reusable template block instances are created from.
type BlockType struct {
	ID                      string    `db:"id"`
	UserID                  string    `db:"user_id"`
	Name                    string    `db:"name"`
	Color                   string    `db:"color"`
	DefaultDurationMinutes  int       `db:"default_duration_minutes"`
	RecurringEnabled        bool      `db:"recurring_enabled"`
	RecurringDaysOfWeek     []int     `db:"-"`
	RecurringTimeOfDay      *string   `db:"recurring_time_of_day"`
	RecurringAutoCreate     bool      `db:"recurring_auto_create"`
	RecurringWeeksInAdvance int       `db:"recurring_weeks_in_advance"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

// BlockTypeMeta is the display metadata attached to notification payloads.
type BlockTypeMeta struct {
	Name  string
	Color string
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)

// ValidateBlockType checks the fields of a block type before persistence.
// It returns the full list of violations rather than stopping at the first.
func ValidateBlockType(bt *BlockType) []string {
	var errs []string

	if bt.UserID == "" {
		errs = append(errs, "user_id is required")
	}
	if strings.TrimSpace(bt.Name) == "" {
		errs = append(errs, "name is required")
	}
	if !hexColorRe.MatchString(bt.Color) {
		errs = append(errs, "color must be a hex color (e.g. #3366FF)")
	}
	if bt.DefaultDurationMinutes <= 0 {
		errs = append(errs, "default_duration_minutes must be positive")
	}
	if bt.RecurringWeeksInAdvance < 0 {
		errs = append(errs, "recurring_weeks_in_advance cannot be negative")
	}
	for _, d := range bt.RecurringDaysOfWeek {
		if d < 0 || d > 6 {
			errs = append(errs, "recurring_days_of_week must contain integers 0..6 (Sun..Sat)")
			break
		}
	}
	if bt.RecurringEnabled && bt.RecurringTimeOfDay != nil {
		if _, err := time.Parse("15:04", *bt.RecurringTimeOfDay); err != nil {
			errs = append(errs, "recurring_time_of_day must be HH:MM")
		}
	}

	return errs
}
