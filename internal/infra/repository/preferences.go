package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// PreferencesRepository reads user preferences from Postgres. A missing row
// falls back to defaults instead of an error, so a fresh user gets
// notifications without any setup step.
type PreferencesRepository struct {
	db *sqlx.DB
}

func NewPreferencesRepository(db *sqlx.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

func (r *PreferencesRepository) GetPreferences(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	var prefs domain.UserPreferences
	err := r.db.GetContext(ctx, &prefs,
		`SELECT user_id, notifications_enabled, notification_lead_time_minutes,
			notification_sound_enabled, standup_time, created_at, updated_at
		 FROM user_preferences WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.UserPreferences{
				UserID:                   userID,
				NotificationsEnabled:     true,
				NotificationSoundEnabled: true,
			}, nil
		}
		return nil, fmt.Errorf("get preferences for %s: %w", userID, err)
	}
	return &prefs, nil
}
