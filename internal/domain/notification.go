package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// NotificationType discriminates what a queued notification is about and
// which payload shape it carries.
type NotificationType string

const (
	NotificationBlockUpcoming NotificationType = "block_upcoming"
	NotificationBlockStart    NotificationType = "block_start"
	NotificationBlockPaused   NotificationType = "block_paused"
	NotificationBlockResumed  NotificationType = "block_resumed"
	NotificationStandup       NotificationType = "standup"
)

// KnownNotificationType reports whether t is one of the defined types.
func KnownNotificationType(t NotificationType) bool {
	switch t {
	case NotificationBlockUpcoming, NotificationBlockStart,
		NotificationBlockPaused, NotificationBlockResumed, NotificationStandup:
		return true
	}
	return false
}

// Payload is the tagged union of notification payloads. Block-related types
// carry a BlockPayload, standup carries a StandupPayload.
type Payload interface {
	payloadTag()
}

type BlockPayload struct {
	BlockName       string    `json:"block_name"`
	BlockColor      string    `json:"block_color,omitempty"`
	LeadMinutes     *int      `json:"lead_minutes,omitempty"`
	BlockTypeID     string    `json:"block_type_id"`
	BlockInstanceID string    `json:"block_instance_id"`
	StartTime       time.Time `json:"start_time"`
}

func (BlockPayload) payloadTag() {}

type StandupPayload struct {
	Time string `json:"time"`
}

func (StandupPayload) payloadTag() {}

// MarshalPayload serializes a payload for persistence. A nil payload
// round-trips as null.
func MarshalPayload(p Payload) (json.RawMessage, error) {
	if p == nil {
		return json.RawMessage("null"), nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal notification payload: %w", err)
	}
	return data, nil
}

// ScheduledNotification is the candidate output of the pure scheduler. It
// becomes persisted only once reconciled into the queue.
type ScheduledNotification struct {
	ID         string
	UserID     string
	Type       NotificationType
	TargetTime time.Time
	Payload    Payload
	CreatedAt  time.Time
}

// QueueItem is a persisted notification row. Once SentAt is set the row is
// immutable.
type QueueItem struct {
	ID         string           `db:"id"`
	UserID     string           `db:"user_id"`
	Type       NotificationType `db:"type"`
	TargetTime time.Time        `db:"target_time"`
	Payload    json.RawMessage  `db:"payload"`
	SentAt     *time.Time       `db:"sent_at"`
	CreatedAt  time.Time        `db:"created_at"`
}

// BlockPayload decodes the payload of a block-related item. It returns nil
// without error when the payload is empty or null.
func (i *QueueItem) BlockPayload() (*BlockPayload, error) {
	if len(i.Payload) == 0 || string(i.Payload) == "null" {
		return nil, nil
	}
	var p BlockPayload
	if err := json.Unmarshal(i.Payload, &p); err != nil {
		return nil, fmt.Errorf("decode block payload: %w", err)
	}
	return &p, nil
}

// StandupPayload decodes the payload of a standup item.
func (i *QueueItem) StandupPayload() (*StandupPayload, error) {
	if len(i.Payload) == 0 || string(i.Payload) == "null" {
		return nil, nil
	}
	var p StandupPayload
	if err := json.Unmarshal(i.Payload, &p); err != nil {
		return nil, fmt.Errorf("decode standup payload: %w", err)
	}
	return &p, nil
}
