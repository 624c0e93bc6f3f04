package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/actions"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/conflict"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/scheduling"
)

type fixture struct {
	router     *gin.Engine
	blocks     *domain.MockBlockRepository
	blockTypes *domain.MockBlockTypeRepository
	calendar   *domain.MockCalendarRepository
	queue      *domain.MockNotificationRepository
	feed       *domain.MockChangeFeed
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		blocks:     domain.NewMockBlockRepository(ctrl),
		blockTypes: domain.NewMockBlockTypeRepository(ctrl),
		calendar:   domain.NewMockCalendarRepository(ctrl),
		queue:      domain.NewMockNotificationRepository(ctrl),
		feed:       domain.NewMockChangeFeed(ctrl),
	}

	resolver := conflict.NewResolver(f.blocks, f.calendar)
	schedulingService := scheduling.NewService(f.blocks, f.blockTypes, resolver, f.feed)
	actionsService := actions.NewService(f.blocks, f.queue, f.feed)

	blockHandler := NewBlockHandler(schedulingService, resolver)
	notificationHandler := NewNotificationHandler(actionsService)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/blocks/schedule", blockHandler.HandleSchedule)
	v1.POST("/blocks/reschedule", blockHandler.HandleReschedule)
	v1.POST("/blocks/suggest", blockHandler.HandleSuggest)
	v1.POST("/blocks/recurring/generate", blockHandler.HandleGenerateRecurring)
	v1.POST("/block-types", blockHandler.HandleCreateBlockType)
	v1.POST("/notifications/action", notificationHandler.HandleAction)
	f.router = r
	return f
}

func (f *fixture) do(t *testing.T, path string, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestScheduleCreated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	f.blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", start, end).
		Return(nil, nil)
	f.calendar.EXPECT().
		ListEventsInRange(gomock.Any(), "user-1", start, end).
		Return(nil, nil)
	f.blocks.EXPECT().
		InsertBlock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *domain.BlockInstance) (*domain.BlockInstance, error) {
			return b, nil
		})
	f.feed.EXPECT().Publish(gomock.Any(), "user-1").Return(nil)

	w := f.do(t, "/api/v1/blocks/schedule", map[string]any{
		"block_type_id": "type-1",
		"start":         start,
		"end":           end,
	}, "user-1")

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp scheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Created == nil || resp.Created.BlockTypeID != "type-1" {
		t.Errorf("created = %+v", resp.Created)
	}
}

func TestScheduleConflictsReturnedAsData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	existing := &domain.BlockInstance{
		ID:           "other",
		UserID:       "user-1",
		BlockTypeID:  "type-2",
		PlannedStart: start.Add(30 * time.Minute),
		PlannedEnd:   end.Add(30 * time.Minute),
		Status:       domain.BlockScheduled,
	}

	f.blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", start, end).
		Return([]*domain.BlockInstance{existing}, nil)
	f.calendar.EXPECT().
		ListEventsInRange(gomock.Any(), "user-1", start, end).
		Return(nil, nil)
	// No InsertBlock, no Publish: conflicts block persistence.

	w := f.do(t, "/api/v1/blocks/schedule", map[string]any{
		"block_type_id": "type-1",
		"start":         start,
		"end":           end,
	}, "user-1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp scheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Created != nil {
		t.Errorf("created = %+v, want null", resp.Created)
	}
	if len(resp.Conflicts) != 1 || resp.Conflicts[0].ID != "other" {
		t.Errorf("conflicts = %+v", resp.Conflicts)
	}
}

func TestScheduleMissingUserHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	w := f.do(t, "/api/v1/blocks/schedule", map[string]any{
		"block_type_id": "type-1",
		"start":         time.Now(),
	}, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestScheduleInvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	w := f.do(t, "/api/v1/blocks/schedule", map[string]any{
		"block_type_id": "type-1",
		"start":         start,
		"end":           start.Add(-time.Hour),
	}, "user-1")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestSuggestReturnsAlternatives(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	existing := &domain.BlockInstance{
		ID:           "busy",
		UserID:       "user-1",
		PlannedStart: start,
		PlannedEnd:   start.Add(time.Hour),
		Status:       domain.BlockScheduled,
	}

	f.blocks.EXPECT().
		ListBlocksInRange(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).
		Return([]*domain.BlockInstance{existing}, nil)
	f.calendar.EXPECT().
		ListEventsInRange(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).
		Return(nil, nil)

	w := f.do(t, "/api/v1/blocks/suggest", map[string]any{
		"start":            start,
		"duration_minutes": 60,
	}, "user-1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp suggestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Conflicts) != 1 {
		t.Errorf("conflicts = %+v", resp.Conflicts)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("expected at least one suggestion")
	}
}

func TestCreateBlockType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.blockTypes.EXPECT().
		InsertBlockType(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, bt *domain.BlockType) (*domain.BlockType, error) {
			if bt.ID == "" {
				t.Error("id not generated before insert")
			}
			if bt.UserID != "user-1" {
				t.Errorf("user_id = %q, want user-1", bt.UserID)
			}
			return bt, nil
		})
	f.feed.EXPECT().Publish(gomock.Any(), "user-1").Return(nil)

	w := f.do(t, "/api/v1/block-types", map[string]any{
		"name":                     "Deep work",
		"color":                    "#EF4444",
		"default_duration_minutes": 90,
	}, "user-1")

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp createBlockTypeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Created == nil || resp.Created.Name != "Deep work" {
		t.Errorf("created = %+v", resp.Created)
	}
}

func TestCreateBlockTypeViolations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	// Bad color and bad weekday together; both must be reported, and
	// nothing inserted.
	w := f.do(t, "/api/v1/block-types", map[string]any{
		"name":                     "Deep work",
		"color":                    "red",
		"default_duration_minutes": 90,
		"recurring_days_of_week":   []int{7},
	}, "user-1")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp createBlockTypeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Violations) != 2 {
		t.Errorf("violations = %v, want 2", resp.Violations)
	}
}

func TestActionStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	block := &domain.BlockInstance{ID: "block-1", UserID: "user-1", Status: domain.BlockScheduled}
	f.blocks.EXPECT().GetBlock(gomock.Any(), "block-1").Return(block, nil)
	f.blocks.EXPECT().
		UpdateBlock(gomock.Any(), "block-1", gomock.Any()).
		Return(&domain.BlockInstance{ID: "block-1", UserID: "user-1", Status: domain.BlockInProgress}, nil)
	f.feed.EXPECT().Publish(gomock.Any(), "user-1").Return(nil)

	w := f.do(t, "/api/v1/notifications/action", map[string]any{
		"action":            "start",
		"block_instance_id": "block-1",
	}, "user-1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestActionStartMissingBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.blocks.EXPECT().GetBlock(gomock.Any(), "gone").Return(nil, domain.ErrBlockNotFound)

	w := f.do(t, "/api/v1/notifications/action", map[string]any{
		"action":            "start",
		"block_instance_id": "gone",
	}, "user-1")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestActionSnoozeUnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	w := f.do(t, "/api/v1/notifications/action", map[string]any{
		"action": "snooze",
		"type":   "coffee_break",
	}, "user-1")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestActionUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	w := f.do(t, "/api/v1/notifications/action", map[string]any{
		"action": "explode",
	}, "user-1")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}
