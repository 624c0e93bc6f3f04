package conflict

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

func TestFindModeNoneShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository expectations: mode none must not touch storage.
	blocks := domain.NewMockBlockRepository(ctrl)
	calendar := domain.NewMockCalendarRepository(ctrl)
	resolver := NewResolver(blocks, calendar)

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	got, err := resolver.Find(context.Background(), "user-1", now, now.Add(time.Hour), ModeNone, "")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("mode none: got %d conflicts, want 0", len(got))
	}
}

func TestFindBlockConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blocks := domain.NewMockBlockRepository(ctrl)
	calendar := domain.NewMockCalendarRepository(ctrl)
	resolver := NewResolver(blocks, calendar)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	overlapping := &domain.BlockInstance{
		ID:           "block-overlap",
		UserID:       "user-1",
		PlannedStart: start.Add(30 * time.Minute),
		PlannedEnd:   end.Add(30 * time.Minute),
	}
	// Returned by the coarse filter but touching only at the boundary;
	// the overlap re-check must drop it.
	touching := &domain.BlockInstance{
		ID:           "block-touching",
		UserID:       "user-1",
		PlannedStart: end,
		PlannedEnd:   end.Add(time.Hour),
	}
	excluded := &domain.BlockInstance{
		ID:           "block-excluded",
		UserID:       "user-1",
		PlannedStart: start,
		PlannedEnd:   end,
	}

	blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", start, end).
		Return([]*domain.BlockInstance{overlapping, touching, excluded}, nil)

	got, err := resolver.Find(context.Background(), "user-1", start, end, ModeBlocks, "block-excluded")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d conflicts, want 1: %+v", len(got), got)
	}
	if got[0].ID != "block-overlap" || got[0].Kind != domain.ConflictBlock {
		t.Errorf("conflict = %+v, want block-overlap/block", got[0])
	}
}

func TestFindBlocksAndCalendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blocks := domain.NewMockBlockRepository(ctrl)
	calendar := domain.NewMockCalendarRepository(ctrl)
	resolver := NewResolver(blocks, calendar)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", start, end).
		Return([]*domain.BlockInstance{
			{ID: "b1", PlannedStart: start.Add(45 * time.Minute), PlannedEnd: end.Add(time.Hour)},
		}, nil)
	calendar.EXPECT().
		ListEventsInRange(gomock.Any(), "user-1", start, end).
		Return([]*domain.CalendarEvent{
			{ID: "ev1", Title: "Team sync", StartTime: start.Add(10 * time.Minute), EndTime: start.Add(20 * time.Minute)},
		}, nil)

	got, err := resolver.Find(context.Background(), "user-1", start, end, ModeBlocksAndCalendar, "")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d conflicts, want 2", len(got))
	}
	// Ordered by conflict start time: calendar event first.
	if got[0].Kind != domain.ConflictCalendar || got[0].Title != "Team sync" {
		t.Errorf("first conflict = %+v, want calendar event", got[0])
	}
	if got[1].Kind != domain.ConflictBlock {
		t.Errorf("second conflict = %+v, want block", got[1])
	}
}

func TestFindRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blocks := domain.NewMockBlockRepository(ctrl)
	calendar := domain.NewMockCalendarRepository(ctrl)
	resolver := NewResolver(blocks, calendar)

	repoErr := errors.New("connection refused")
	blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, repoErr)

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	_, err := resolver.Find(context.Background(), "user-1", now, now.Add(time.Hour), ModeBlocks, "")
	if !errors.Is(err, repoErr) {
		t.Errorf("got %v, want wrapped repository error", err)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("none") != ModeNone {
		t.Error("none not parsed")
	}
	if ParseMode("blocks") != ModeBlocks {
		t.Error("blocks not parsed")
	}
	if ParseMode("") != ModeBlocksAndCalendar {
		t.Error("empty string should default to strictest mode")
	}
	if ParseMode("whatever") != ModeBlocksAndCalendar {
		t.Error("unknown mode should default to strictest mode")
	}
}
