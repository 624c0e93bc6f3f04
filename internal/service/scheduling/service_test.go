package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/conflict"
)

type serviceMocks struct {
	blocks     *domain.MockBlockRepository
	blockTypes *domain.MockBlockTypeRepository
	calendar   *domain.MockCalendarRepository
	feed       *domain.MockChangeFeed
}

func newTestService(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		blocks:     domain.NewMockBlockRepository(ctrl),
		blockTypes: domain.NewMockBlockTypeRepository(ctrl),
		calendar:   domain.NewMockCalendarRepository(ctrl),
		feed:       domain.NewMockChangeFeed(ctrl),
	}
	resolver := conflict.NewResolver(m.blocks, m.calendar)
	return NewService(m.blocks, m.blockTypes, resolver, m.feed), m
}

func TestScheduleConflictsBlockPersistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	start := now.Add(30 * time.Minute)
	end := start.Add(time.Hour)

	m.blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", start, end).
		Return(nil, nil)
	m.calendar.EXPECT().
		ListEventsInRange(gomock.Any(), "user-1", start, end).
		Return([]*domain.CalendarEvent{
			{ID: "ev1", Title: "1:1", StartTime: now.Add(40 * time.Minute), EndTime: now.Add(50 * time.Minute)},
		}, nil)
	// No InsertBlock, no Publish: conflicts without AllowConflicts must not persist.

	result, err := svc.Schedule(context.Background(), ScheduleParams{
		UserID:      "user-1",
		BlockTypeID: "type-1",
		Start:       start,
		End:         end,
	}, Options{Mode: conflict.ModeBlocksAndCalendar})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if result.Block != nil {
		t.Errorf("block persisted despite conflicts")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].ID != "ev1" {
		t.Errorf("conflicts = %+v, want single calendar conflict", result.Conflicts)
	}
}

func TestScheduleAllowConflictsPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	start := now.Add(30 * time.Minute)
	end := start.Add(time.Hour)

	m.blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", start, end).
		Return(nil, nil)
	m.calendar.EXPECT().
		ListEventsInRange(gomock.Any(), "user-1", start, end).
		Return([]*domain.CalendarEvent{
			{ID: "ev1", StartTime: now.Add(40 * time.Minute), EndTime: now.Add(50 * time.Minute)},
		}, nil)
	m.blocks.EXPECT().
		InsertBlock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *domain.BlockInstance) (*domain.BlockInstance, error) {
			if b.Status != domain.BlockScheduled {
				t.Errorf("inserted status = %s, want scheduled", b.Status)
			}
			if !b.PlannedStart.Equal(start) || !b.PlannedEnd.Equal(end) {
				t.Errorf("inserted window = %v..%v", b.PlannedStart, b.PlannedEnd)
			}
			return b, nil
		})
	m.feed.EXPECT().Publish(gomock.Any(), "user-1").Return(nil)

	result, err := svc.Schedule(context.Background(), ScheduleParams{
		UserID:      "user-1",
		BlockTypeID: "type-1",
		Start:       start,
		End:         end,
	}, Options{Mode: conflict.ModeBlocksAndCalendar, AllowConflicts: true})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if result.Block == nil {
		t.Fatal("block not persisted with AllowConflicts")
	}
	if len(result.Conflicts) != 1 {
		t.Errorf("overridden conflicts not returned for display")
	}
}

func TestScheduleDerivesEndFromBlockType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	start := time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC)
	wantEnd := start.Add(90 * time.Minute)

	m.blockTypes.EXPECT().
		GetBlockType(gomock.Any(), "type-1").
		Return(&domain.BlockType{ID: "type-1", DefaultDurationMinutes: 90}, nil)
	m.blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", start, wantEnd).
		Return(nil, nil)
	m.blocks.EXPECT().
		InsertBlock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *domain.BlockInstance) (*domain.BlockInstance, error) {
			if !b.PlannedEnd.Equal(wantEnd) {
				t.Errorf("derived end = %v, want %v", b.PlannedEnd, wantEnd)
			}
			return b, nil
		})
	m.feed.EXPECT().Publish(gomock.Any(), "user-1").Return(nil)

	_, err := svc.Schedule(context.Background(), ScheduleParams{
		UserID:      "user-1",
		BlockTypeID: "type-1",
		Start:       start,
	}, Options{Mode: conflict.ModeBlocks})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
}

func TestScheduleInvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(ctrl)

	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	_, err := svc.Schedule(context.Background(), ScheduleParams{
		UserID:      "user-1",
		BlockTypeID: "type-1",
		Start:       start,
		End:         start.Add(-time.Hour),
	}, Options{Mode: conflict.ModeNone})
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("got %v, want ErrInvalidRange", err)
	}
}

func TestRescheduleExcludesSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	start := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	m.blocks.EXPECT().
		GetBlock(gomock.Any(), "block-1").
		Return(&domain.BlockInstance{ID: "block-1", UserID: "user-1"}, nil)
	// The block's previous occurrence of itself overlaps the new window;
	// exclusion must ignore it.
	m.blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", start, end).
		Return([]*domain.BlockInstance{
			{ID: "block-1", PlannedStart: start.Add(-30 * time.Minute), PlannedEnd: start.Add(30 * time.Minute)},
		}, nil)
	m.blocks.EXPECT().
		UpdateBlock(gomock.Any(), "block-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, u domain.BlockUpdate) (*domain.BlockInstance, error) {
			if u.PlannedStart == nil || !u.PlannedStart.Equal(start) {
				t.Errorf("update planned_start = %v", u.PlannedStart)
			}
			return &domain.BlockInstance{ID: id, PlannedStart: *u.PlannedStart, PlannedEnd: *u.PlannedEnd}, nil
		})
	m.feed.EXPECT().Publish(gomock.Any(), "user-1").Return(nil)

	result, err := svc.Reschedule(context.Background(), "user-1", "block-1", start, end, Options{Mode: conflict.ModeBlocks})
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if result.Block == nil {
		t.Fatal("reschedule blocked by its own previous window")
	}
}

func TestRescheduleForeignBlockNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	start := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	m.blocks.EXPECT().
		GetBlock(gomock.Any(), "block-1").
		Return(&domain.BlockInstance{ID: "block-1", UserID: "user-2"}, nil)
	// No conflict scan, no UpdateBlock, no Publish: the caller must not
	// be able to move another user's block.

	_, err := svc.Reschedule(context.Background(), "user-1", "block-1", start, end, Options{Mode: conflict.ModeBlocks})
	if !errors.Is(err, domain.ErrBlockNotFound) {
		t.Errorf("got %v, want ErrBlockNotFound", err)
	}
}
