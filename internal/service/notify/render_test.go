package notify

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

func queueItem(t *testing.T, typ domain.NotificationType, payload domain.Payload) *domain.QueueItem {
	t.Helper()

	raw, err := domain.MarshalPayload(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &domain.QueueItem{
		ID:         "item-1",
		UserID:     "user-1",
		Type:       typ,
		TargetTime: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		Payload:    raw,
	}
}

func TestRenderMessage(t *testing.T) {
	lead := 5

	tests := []struct {
		name      string
		item      *domain.QueueItem
		wantTitle string
		wantBody  string
	}{
		{
			name: "upcoming with payload",
			item: queueItem(t, domain.NotificationBlockUpcoming, domain.BlockPayload{
				BlockName:   "Deep Work",
				LeadMinutes: &lead,
			}),
			wantTitle: "Block starting soon",
			wantBody:  "Deep Work begins in 5 minutes.",
		},
		{
			name:      "upcoming without payload falls back",
			item:      queueItem(t, domain.NotificationBlockUpcoming, nil),
			wantTitle: "Block starting soon",
			wantBody:  "Scheduled block begins in 10 minutes.",
		},
		{
			name:      "start",
			item:      queueItem(t, domain.NotificationBlockStart, domain.BlockPayload{BlockName: "Review"}),
			wantTitle: "Block in progress",
			wantBody:  "Review is starting now.",
		},
		{
			name:      "resumed",
			item:      queueItem(t, domain.NotificationBlockResumed, nil),
			wantTitle: "Block resumed",
			wantBody:  "Meeting ended, your block has resumed.",
		},
		{
			name:      "standup with time",
			item:      queueItem(t, domain.NotificationStandup, domain.StandupPayload{Time: "09:00"}),
			wantTitle: "Daily standup reminder",
			wantBody:  "Standup starts at 09:00.",
		},
		{
			name:      "standup without time",
			item:      queueItem(t, domain.NotificationStandup, nil),
			wantTitle: "Daily standup reminder",
			wantBody:  "Time for the daily standup check-in.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := RenderMessage(tt.item)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestRenderMessageCorruptPayload(t *testing.T) {
	item := &domain.QueueItem{
		Type:    domain.NotificationBlockUpcoming,
		Payload: json.RawMessage(`{"block_name": 42}`),
	}

	title, body := RenderMessage(item)
	if title != "Block starting soon" {
		t.Errorf("title = %q", title)
	}
	if !strings.Contains(body, "Scheduled block") {
		t.Errorf("corrupt payload should fall back to generic name, got %q", body)
	}
}

func TestRenderExtra(t *testing.T) {
	item := queueItem(t, domain.NotificationBlockStart, domain.BlockPayload{
		BlockName:       "Deep Work",
		BlockTypeID:     "type-1",
		BlockInstanceID: "block-1",
		StartTime:       time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC),
	})

	extra := RenderExtra(item)

	if extra["type"] != string(domain.NotificationBlockStart) {
		t.Errorf("extra type = %v", extra["type"])
	}
	if extra["queue_item_id"] != "item-1" {
		t.Errorf("extra queue_item_id = %v", extra["queue_item_id"])
	}
	if extra["block_instance_id"] != "block-1" {
		t.Errorf("extra block_instance_id = %v", extra["block_instance_id"])
	}
}
