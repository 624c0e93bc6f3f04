package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/conflict"
)

// GenerateResult summarizes one recurring-generation pass.
type GenerateResult struct {
	Created []*domain.BlockInstance
	Skipped int
}

// GenerateRecurring expands every auto-create recurring block type for the
// user into concrete block instances over its advance window, skipping past
// occurrences and windows already occupied by another block.
func (s *Service) GenerateRecurring(ctx context.Context, userID string, from time.Time) (*GenerateResult, error) {
	blockTypes, err := s.blockTypes.ListAutoCreateRecurring(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recurring block types: %w", err)
	}

	result := &GenerateResult{}
	now := s.now()

	for _, bt := range blockTypes {
		if bt.RecurringTimeOfDay == nil || len(bt.RecurringDaysOfWeek) == 0 {
			continue
		}

		for _, plannedStart := range plannedTimes(bt, from) {
			if !plannedStart.After(now) {
				continue
			}

			minutes := bt.DefaultDurationMinutes
			if minutes <= 0 {
				minutes = fallbackDurationMinutes
			}
			plannedEnd := plannedStart.Add(time.Duration(minutes) * time.Minute)

			conflicts, err := s.resolver.Find(ctx, userID, plannedStart, plannedEnd, conflict.ModeBlocks, "")
			if err != nil {
				return nil, err
			}
			if len(conflicts) > 0 {
				result.Skipped++
				continue
			}

			created, err := s.blocks.InsertBlock(ctx, &domain.BlockInstance{
				ID:           uuid.NewString(),
				UserID:       userID,
				BlockTypeID:  bt.ID,
				PlannedStart: plannedStart,
				PlannedEnd:   plannedEnd,
				Status:       domain.BlockScheduled,
			})
			if err != nil {
				return nil, fmt.Errorf("insert recurring block: %w", err)
			}
			result.Created = append(result.Created, created)
		}
	}

	if len(result.Created) > 0 {
		s.publishChange(ctx, userID)
	}

	slog.InfoContext(ctx, "recurring blocks generated",
		slog.String("user_id", userID),
		slog.Int("created", len(result.Created)),
		slog.Int("skipped", result.Skipped),
	)

	return result, nil
}

// plannedTimes expands a recurring block type into concrete start times
// within its advance window, beginning at the start of from's day.
func plannedTimes(bt *domain.BlockType, from time.Time) []time.Time {
	timeOfDay, err := time.Parse("15:04", *bt.RecurringTimeOfDay)
	if err != nil {
		return nil
	}

	weeks := bt.RecurringWeeksInAdvance
	if weeks < 1 {
		weeks = 1
	}

	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	days := weeks * 7

	allowed := make(map[time.Weekday]bool, len(bt.RecurringDaysOfWeek))
	for _, d := range bt.RecurringDaysOfWeek {
		allowed[time.Weekday(d)] = true
	}

	var out []time.Time
	for offset := 0; offset < days; offset++ {
		day := dayStart.AddDate(0, 0, offset)
		if !allowed[day.Weekday()] {
			continue
		}
		out = append(out, time.Date(day.Year(), day.Month(), day.Day(),
			timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, day.Location()))
	}

	return out
}
