package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

const blockTypeColumns = `id, user_id, name, color, default_duration_minutes,
	recurring_enabled, recurring_days_of_week, recurring_time_of_day,
	recurring_auto_create, recurring_weeks_in_advance, created_at, updated_at`

// blockTypeRow carries the JSONB weekday column alongside the domain fields.
type blockTypeRow struct {
	domain.BlockType
	RecurringDaysJSON []byte `db:"recurring_days_of_week"`
}

func (row *blockTypeRow) toDomain() (*domain.BlockType, error) {
	bt := row.BlockType
	if len(row.RecurringDaysJSON) > 0 {
		if err := json.Unmarshal(row.RecurringDaysJSON, &bt.RecurringDaysOfWeek); err != nil {
			return nil, fmt.Errorf("decode recurring days for block type %s: %w", bt.ID, err)
		}
	}
	return &bt, nil
}

// BlockTypeRepository is the Postgres implementation of
// domain.BlockTypeRepository.
type BlockTypeRepository struct {
	db *sqlx.DB
}

func NewBlockTypeRepository(db *sqlx.DB) *BlockTypeRepository {
	return &BlockTypeRepository{db: db}
}

func (r *BlockTypeRepository) InsertBlockType(ctx context.Context, bt *domain.BlockType) (*domain.BlockType, error) {
	days, err := json.Marshal(bt.RecurringDaysOfWeek)
	if err != nil {
		return nil, fmt.Errorf("encode recurring days: %w", err)
	}

	var row blockTypeRow
	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO block_types (
			id, user_id, name, color, default_duration_minutes,
			recurring_enabled, recurring_days_of_week, recurring_time_of_day,
			recurring_auto_create, recurring_weeks_in_advance
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+blockTypeColumns,
		bt.ID, bt.UserID, bt.Name, bt.Color, bt.DefaultDurationMinutes,
		bt.RecurringEnabled, days, bt.RecurringTimeOfDay,
		bt.RecurringAutoCreate, bt.RecurringWeeksInAdvance,
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("insert block type: %w", err)
	}
	return row.toDomain()
}

func (r *BlockTypeRepository) GetBlockType(ctx context.Context, id string) (*domain.BlockType, error) {
	var row blockTypeRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+blockTypeColumns+` FROM block_types WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlockTypeNotFound
		}
		return nil, fmt.Errorf("get block type %s: %w", id, err)
	}
	return row.toDomain()
}

func (r *BlockTypeRepository) ListBlockTypes(ctx context.Context, userID string) ([]*domain.BlockType, error) {
	var rows []blockTypeRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+blockTypeColumns+` FROM block_types WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list block types: %w", err)
	}
	return rowsToDomain(rows)
}

func (r *BlockTypeRepository) ListAutoCreateRecurring(ctx context.Context, userID string) ([]*domain.BlockType, error) {
	var rows []blockTypeRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+blockTypeColumns+`
		 FROM block_types
		 WHERE user_id = $1 AND recurring_enabled AND recurring_auto_create
		 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list auto-create recurring block types: %w", err)
	}
	return rowsToDomain(rows)
}

func rowsToDomain(rows []blockTypeRow) ([]*domain.BlockType, error) {
	types := make([]*domain.BlockType, 0, len(rows))
	for i := range rows {
		bt, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		types = append(types, bt)
	}
	return types, nil
}
