// Package scheduling creates and moves block instances, delegating overlap
// detection to the conflict resolver. Conflicts are returned as data so
// callers can confirm or pick another time; nothing is persisted until the
// caller allows it.
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

const fallbackDurationMinutes = 60

type Service struct {
	blocks     domain.BlockRepository
	blockTypes domain.BlockTypeRepository
	resolver   *conflict.Resolver
	feed       domain.ChangeFeed

	now func() time.Time
}

func NewService(
	blocks domain.BlockRepository,
	blockTypes domain.BlockTypeRepository,
	resolver *conflict.Resolver,
	feed domain.ChangeFeed,
) *Service {
	return &Service{
		blocks:     blocks,
		blockTypes: blockTypes,
		resolver:   resolver,
		feed:       feed,
		now:        time.Now,
	}
}

// ScheduleParams describes a proposed block instance. End is optional; when
// zero it is derived from the block type's default duration.
type ScheduleParams struct {
	UserID      string
	BlockTypeID string
	Start       time.Time
	End         time.Time
}

// Options control conflict handling for schedule and reschedule calls.
type Options struct {
	Mode           conflict.Mode
	AllowConflicts bool
}

// Result is the outcome of a schedule or reschedule call. When Conflicts is
// non-empty and the caller did not allow conflicts, Block is nil and nothing
// was persisted.
type Result struct {
	Block     *domain.BlockInstance
	Conflicts []domain.Conflict
}

// Schedule validates the proposed window, checks for conflicts, and
// persists the block when clear (or when the caller allowed conflicts).
func (s *Service) Schedule(ctx context.Context, params ScheduleParams, opts Options) (*Result, error) {
	end := params.End
	if end.IsZero() {
		minutes, err := s.defaultDurationMinutes(ctx, params.BlockTypeID)
		if err != nil {
			return nil, err
		}
		end = params.Start.Add(time.Duration(minutes) * time.Minute)
	}

	window, err := domain.NewTimeRange(params.Start, end)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.resolver.Find(ctx, params.UserID, window.Start, window.End, opts.Mode, "")
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 && !opts.AllowConflicts {
		slog.InfoContext(ctx, "schedule rejected by conflicts",
			slog.String("user_id", params.UserID),
			slog.String("block_type_id", params.BlockTypeID),
			slog.Int("conflict_count", len(conflicts)),
		)
		return &Result{Conflicts: conflicts}, nil
	}

	created, err := s.blocks.InsertBlock(ctx, &domain.BlockInstance{
		ID:           uuid.NewString(),
		UserID:       params.UserID,
		BlockTypeID:  params.BlockTypeID,
		PlannedStart: window.Start,
		PlannedEnd:   window.End,
		Status:       domain.BlockScheduled,
	})
	if err != nil {
		return nil, fmt.Errorf("insert block: %w", err)
	}

	s.publishChange(ctx, params.UserID)

	slog.InfoContext(ctx, "block scheduled",
		slog.String("user_id", params.UserID),
		slog.String("block_instance_id", created.ID),
		slog.Time("planned_start", created.PlannedStart),
		slog.Time("planned_end", created.PlannedEnd),
		slog.Int("overridden_conflicts", len(conflicts)),
	)

	return &Result{Block: created, Conflicts: conflicts}, nil
}

// Reschedule moves an existing block, excluding the block itself from
// conflict detection so a move-in-place never conflicts with itself.
func (s *Service) Reschedule(ctx context.Context, userID, blockInstanceID string, newStart, newEnd time.Time, opts Options) (*Result, error) {
	window, err := domain.NewTimeRange(newStart, newEnd)
	if err != nil {
		return nil, err
	}

	existing, err := s.blocks.GetBlock(ctx, blockInstanceID)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", blockInstanceID, err)
	}
	if existing.UserID != userID {
		// Another user's block is indistinguishable from a missing one.
		return nil, domain.ErrBlockNotFound
	}

	conflicts, err := s.resolver.Find(ctx, userID, window.Start, window.End, opts.Mode, blockInstanceID)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 && !opts.AllowConflicts {
		return &Result{Conflicts: conflicts}, nil
	}

	updated, err := s.blocks.UpdateBlock(ctx, blockInstanceID, domain.BlockUpdate{
		PlannedStart: &window.Start,
		PlannedEnd:   &window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("update block %s: %w", blockInstanceID, err)
	}

	s.publishChange(ctx, userID)

	slog.InfoContext(ctx, "block rescheduled",
		slog.String("user_id", userID),
		slog.String("block_instance_id", blockInstanceID),
		slog.Time("planned_start", window.Start),
		slog.Time("planned_end", window.End),
	)

	return &Result{Block: updated, Conflicts: conflicts}, nil
}

// CreateBlockType validates and persists a reusable block template.
// Violations are returned as data so callers can report all of them at once.
func (s *Service) CreateBlockType(ctx context.Context, bt *domain.BlockType) (*domain.BlockType, []string, error) {
	if bt.ID == "" {
		bt.ID = uuid.NewString()
	}

	if violations := domain.ValidateBlockType(bt); len(violations) > 0 {
		return nil, violations, nil
	}

	created, err := s.blockTypes.InsertBlockType(ctx, bt)
	if err != nil {
		return nil, nil, fmt.Errorf("insert block type: %w", err)
	}

	s.publishChange(ctx, bt.UserID)

	slog.InfoContext(ctx, "block type created",
		slog.String("user_id", bt.UserID),
		slog.String("block_type_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil, nil
}

func (s *Service) defaultDurationMinutes(ctx context.Context, blockTypeID string) (int, error) {
	bt, err := s.blockTypes.GetBlockType(ctx, blockTypeID)
	if err != nil {
		return 0, fmt.Errorf("get block type %s: %w", blockTypeID, err)
	}
	if bt.DefaultDurationMinutes <= 0 {
		return fallbackDurationMinutes, nil
	}
	return bt.DefaultDurationMinutes, nil
}

// publishChange is best-effort: the scheduler runner's interval tick covers
// a lost event.
func (s *Service) publishChange(ctx context.Context, userID string) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to publish block change",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
