package domain

import "time"

// UserPreferences is read fresh on every scheduling computation; the core
// keeps no cached copy.
type UserPreferences struct {
	UserID                      string    `db:"user_id"`
	NotificationsEnabled        bool      `db:"notifications_enabled"`
	NotificationLeadTimeMinutes *int      `db:"notification_lead_time_minutes"`
	NotificationSoundEnabled    bool      `db:"notification_sound_enabled"`
	StandupTime                 *string   `db:"standup_time"`
	CreatedAt                   time.Time `db:"created_at"`
	UpdatedAt                   time.Time `db:"updated_at"`
}

// EffectiveLeadMinutes resolves the upcoming-warning lead time. A configured
// value wins, including zero; negative values are treated as unset.
func (p *UserPreferences) EffectiveLeadMinutes(fallback int) int {
	if p == nil || p.NotificationLeadTimeMinutes == nil {
		return fallback
	}
	if *p.NotificationLeadTimeMinutes < 0 {
		return fallback
	}
	return *p.NotificationLeadTimeMinutes
}
