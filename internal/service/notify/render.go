package notify

import (
	"fmt"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// RenderMessage maps a queue item to the title/body shown on the OS
// notification surface. Missing or malformed payloads fall back to generic
// wording instead of failing the delivery.
func RenderMessage(item *domain.QueueItem) (title, body string) {
	switch item.Type {
	case domain.NotificationBlockUpcoming:
		name, minutes := blockNameAndLead(item)
		return "Block starting soon", fmt.Sprintf("%s begins in %d minutes.", name, minutes)
	case domain.NotificationBlockStart:
		name, _ := blockNameAndLead(item)
		return "Block in progress", fmt.Sprintf("%s is starting now.", name)
	case domain.NotificationBlockPaused:
		name, _ := blockNameAndLead(item)
		return "Block paused for meeting", fmt.Sprintf("%s paused due to a meeting.", name)
	case domain.NotificationBlockResumed:
		return "Block resumed", "Meeting ended, your block has resumed."
	case domain.NotificationStandup:
		return "Daily standup reminder", standupBody(item)
	default:
		return "Planner", "You have a new update."
	}
}

// RenderExtra builds the action-handler context attached to the dispatched
// notification: the payload fields plus queue bookkeeping.
func RenderExtra(item *domain.QueueItem) map[string]any {
	extra := map[string]any{
		"type":          string(item.Type),
		"queue_item_id": item.ID,
		"target_time":   item.TargetTime,
	}

	switch item.Type {
	case domain.NotificationStandup:
		if p, err := item.StandupPayload(); err == nil && p != nil {
			extra["time"] = p.Time
		}
	default:
		if p, err := item.BlockPayload(); err == nil && p != nil {
			extra["block_name"] = p.BlockName
			extra["block_type_id"] = p.BlockTypeID
			extra["block_instance_id"] = p.BlockInstanceID
			extra["start_time"] = p.StartTime
		}
	}

	return extra
}

func blockNameAndLead(item *domain.QueueItem) (string, int) {
	name := "Scheduled block"
	minutes := DefaultUpcomingWarningMinutes

	p, err := item.BlockPayload()
	if err != nil || p == nil {
		return name, minutes
	}
	if p.BlockName != "" {
		name = p.BlockName
	}
	if p.LeadMinutes != nil {
		minutes = *p.LeadMinutes
	}
	return name, minutes
}

func standupBody(item *domain.QueueItem) string {
	p, err := item.StandupPayload()
	if err == nil && p != nil && p.Time != "" {
		return fmt.Sprintf("Standup starts at %s.", p.Time)
	}
	return "Time for the daily standup check-in."
}
