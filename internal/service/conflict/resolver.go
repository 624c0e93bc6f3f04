// Package conflict reports overlaps between a proposed block window and
// existing blocks or imported calendar events, and proposes free slots
// nearby.
package conflict

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// Mode selects which conflict sources are consulted.
type Mode string

const (
	ModeNone              Mode = "none"
	ModeBlocks            Mode = "blocks"
	ModeBlocksAndCalendar Mode = "blocks_and_calendar"
)

// ParseMode maps a request string to a Mode, defaulting to the strictest.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeNone, ModeBlocks, ModeBlocksAndCalendar:
		return Mode(s)
	default:
		return ModeBlocksAndCalendar
	}
}

type Resolver struct {
	blocks   domain.BlockRepository
	calendar domain.CalendarRepository
}

func NewResolver(blocks domain.BlockRepository, calendar domain.CalendarRepository) *Resolver {
	return &Resolver{
		blocks:   blocks,
		calendar: calendar,
	}
}

// Find returns the conflicts of [start, end) for the user, ordered by
// conflict start time. excludeBlockID skips the block being rescheduled.
//
// The repository filter (planned_start < end AND planned_end > start) is
// re-verified in memory with the overlap predicate so a boundary mismatch
// at the storage layer cannot produce a false conflict.
func (r *Resolver) Find(ctx context.Context, userID string, start, end time.Time, mode Mode, excludeBlockID string) ([]domain.Conflict, error) {
	if mode == ModeNone {
		return nil, nil
	}

	conflicts := make([]domain.Conflict, 0)

	blocks, err := r.blocks.ListBlocksInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list blocks in range: %w", err)
	}

	for _, b := range blocks {
		if excludeBlockID != "" && b.ID == excludeBlockID {
			continue
		}
		if !domain.Overlaps(b.PlannedStart, b.PlannedEnd, start, end) {
			continue
		}
		conflicts = append(conflicts, domain.Conflict{
			Kind:  domain.ConflictBlock,
			ID:    b.ID,
			Start: b.PlannedStart,
			End:   b.PlannedEnd,
		})
	}

	if mode == ModeBlocksAndCalendar {
		events, err := r.calendar.ListEventsInRange(ctx, userID, start, end)
		if err != nil {
			return nil, fmt.Errorf("list calendar events in range: %w", err)
		}

		for _, ev := range events {
			if !domain.Overlaps(ev.StartTime, ev.EndTime, start, end) {
				continue
			}
			conflicts = append(conflicts, domain.Conflict{
				Kind:  domain.ConflictCalendar,
				ID:    ev.ID,
				Title: ev.Title,
				Start: ev.StartTime,
				End:   ev.EndTime,
			})
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Start.Before(conflicts[j].Start)
	})

	if len(conflicts) > 0 {
		slog.DebugContext(ctx, "conflicts found",
			slog.String("user_id", userID),
			slog.Time("start", start),
			slog.Time("end", end),
			slog.Int("count", len(conflicts)),
		)
	}

	return conflicts, nil
}
