package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

const blockColumns = `id, user_id, block_type_id, planned_start, planned_end, status,
	actual_start, actual_end, paused_until, pause_reason, notes, created_at, updated_at`

// BlockRepository is the Postgres implementation of domain.BlockRepository.
type BlockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

func (r *BlockRepository) ListBlocksInRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.BlockInstance, error) {
	var blocks []*domain.BlockInstance
	err := r.db.SelectContext(ctx, &blocks,
		`SELECT `+blockColumns+`
		 FROM block_instances
		 WHERE user_id = $1 AND planned_start < $3 AND planned_end > $2
		 ORDER BY planned_start`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list blocks in range: %w", err)
	}
	return blocks, nil
}

func (r *BlockRepository) ListBlocksStartingIn(ctx context.Context, userID string, start, end time.Time) ([]*domain.BlockInstance, error) {
	var blocks []*domain.BlockInstance
	err := r.db.SelectContext(ctx, &blocks,
		`SELECT `+blockColumns+`
		 FROM block_instances
		 WHERE user_id = $1 AND planned_start >= $2 AND planned_start < $3
		 ORDER BY planned_start`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list blocks starting in range: %w", err)
	}
	return blocks, nil
}

func (r *BlockRepository) GetBlock(ctx context.Context, id string) (*domain.BlockInstance, error) {
	var block domain.BlockInstance
	err := r.db.GetContext(ctx, &block,
		`SELECT `+blockColumns+` FROM block_instances WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlockNotFound
		}
		return nil, fmt.Errorf("get block %s: %w", id, err)
	}
	return &block, nil
}

func (r *BlockRepository) InsertBlock(ctx context.Context, block *domain.BlockInstance) (*domain.BlockInstance, error) {
	var inserted domain.BlockInstance
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO block_instances
			(id, user_id, block_type_id, planned_start, planned_end, status,
			 actual_start, actual_end, paused_until, pause_reason, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+blockColumns,
		block.ID, block.UserID, block.BlockTypeID, block.PlannedStart, block.PlannedEnd,
		block.Status, block.ActualStart, block.ActualEnd, block.PausedUntil,
		block.PauseReason, block.Notes,
	).StructScan(&inserted)
	if err != nil {
		return nil, fmt.Errorf("insert block: %w", err)
	}
	return &inserted, nil
}

func (r *BlockRepository) UpdateBlock(ctx context.Context, id string, update domain.BlockUpdate) (*domain.BlockInstance, error) {
	set := make([]string, 0, 8)
	args := make([]any, 0, 9)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.PlannedStart != nil {
		add("planned_start", *update.PlannedStart)
	}
	if update.PlannedEnd != nil {
		add("planned_end", *update.PlannedEnd)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.ActualStart != nil {
		add("actual_start", *update.ActualStart)
	}
	if update.ActualEnd != nil {
		add("actual_end", *update.ActualEnd)
	}
	if update.PausedUntil != nil {
		add("paused_until", *update.PausedUntil)
	}
	if update.PauseReason != nil {
		add("pause_reason", *update.PauseReason)
	}
	if update.Notes != nil {
		add("notes", *update.Notes)
	}
	if len(set) == 0 {
		return r.GetBlock(ctx, id)
	}
	set = append(set, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE block_instances SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), blockColumns,
	)

	var updated domain.BlockInstance
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlockNotFound
		}
		return nil, fmt.Errorf("update block %s: %w", id, err)
	}
	return &updated, nil
}
