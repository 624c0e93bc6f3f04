// Package notify computes the set of notifications that should exist for a
// user's blocks at a point in time. The computation is pure and
// deterministic: identical inputs yield identical target times, which the
// queue's equality-based dedup depends on.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

const DefaultUpcomingWarningMinutes = 10

// Input carries everything one scheduling computation reads. Preferences
// and TypeMeta are optional.
type Input struct {
	UserID                 string
	Blocks                 []*domain.BlockInstance
	Now                    time.Time
	UpcomingWarningMinutes int
	StandupTime            string
	Preferences            *domain.UserPreferences
	TypeMeta               map[string]domain.BlockTypeMeta
}

// Build computes the candidate notifications for the input. Targets at or
// before Now are never emitted. When notifications are disabled the result
// is empty, standup included.
func Build(in Input) []*domain.ScheduledNotification {
	if in.Preferences != nil && !in.Preferences.NotificationsEnabled {
		return nil
	}

	fallback := in.UpcomingWarningMinutes
	if fallback <= 0 {
		fallback = DefaultUpcomingWarningMinutes
	}
	leadMinutes := in.Preferences.EffectiveLeadMinutes(fallback)

	var out []*domain.ScheduledNotification

	for _, block := range in.Blocks {
		meta := in.TypeMeta[block.BlockTypeID]

		upcomingAt := block.PlannedStart.Add(-time.Duration(leadMinutes) * time.Minute)
		if upcomingAt.After(in.Now) {
			lead := leadMinutes
			out = append(out, newNotification(in.UserID, domain.NotificationBlockUpcoming, upcomingAt, domain.BlockPayload{
				BlockName:       blockName(meta),
				BlockColor:      meta.Color,
				LeadMinutes:     &lead,
				BlockTypeID:     block.BlockTypeID,
				BlockInstanceID: block.ID,
				StartTime:       block.PlannedStart,
			}))
		}

		if block.PlannedStart.After(in.Now) {
			out = append(out, newNotification(in.UserID, domain.NotificationBlockStart, block.PlannedStart, domain.BlockPayload{
				BlockName:       blockName(meta),
				BlockColor:      meta.Color,
				BlockTypeID:     block.BlockTypeID,
				BlockInstanceID: block.ID,
				StartTime:       block.PlannedStart,
			}))
		}

		if block.Status == domain.BlockPaused && block.PausedUntil != nil && block.PausedUntil.After(in.Now) {
			out = append(out, newNotification(in.UserID, domain.NotificationBlockResumed, *block.PausedUntil, domain.BlockPayload{
				BlockName:       blockName(meta),
				BlockColor:      meta.Color,
				BlockTypeID:     block.BlockTypeID,
				BlockInstanceID: block.ID,
				StartTime:       block.PlannedStart,
			}))
		}
	}

	if in.StandupTime != "" {
		if target, ok := nextStandup(in.StandupTime, in.Now); ok {
			out = append(out, newNotification(in.UserID, domain.NotificationStandup, target, domain.StandupPayload{
				Time: in.StandupTime,
			}))
		}
	}

	return out
}

// nextStandup resolves an "HH:MM" wall-clock time to its next strictly
// future occurrence in Now's location. Malformed input is skipped rather
// than surfaced; the value comes from a free-form preferences row.
func nextStandup(standupTime string, now time.Time) (time.Time, bool) {
	parsed, err := time.Parse("15:04", standupTime)
	if err != nil {
		return time.Time{}, false
	}

	target := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}

	return target, true
}

func newNotification(userID string, typ domain.NotificationType, target time.Time, payload domain.Payload) *domain.ScheduledNotification {
	return &domain.ScheduledNotification{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       typ,
		TargetTime: target,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
}

func blockName(meta domain.BlockTypeMeta) string {
	if meta.Name != "" {
		return meta.Name
	}
	return "Scheduled block"
}
