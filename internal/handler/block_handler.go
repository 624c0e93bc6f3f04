package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/conflict"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/scheduling"
)

type BlockHandler struct {
	scheduling *scheduling.Service
	resolver   *conflict.Resolver
}

func NewBlockHandler(schedulingService *scheduling.Service, resolver *conflict.Resolver) *BlockHandler {
	return &BlockHandler{
		scheduling: schedulingService,
		resolver:   resolver,
	}
}

type scheduleRequest struct {
	BlockTypeID    string    `json:"block_type_id" binding:"required"`
	Start          time.Time `json:"start" binding:"required"`
	End            time.Time `json:"end"`
	ConflictMode   string    `json:"conflict_mode"`
	AllowConflicts bool      `json:"allow_conflicts"`
}

type scheduleResponse struct {
	Created   *domain.BlockInstance `json:"created"`
	Conflicts []domain.Conflict     `json:"conflicts,omitempty"`
}

// HandleSchedule creates a block instance. Conflicts are data, not errors:
// a conflicted request answers 200 with created null and the conflict list.
func (h *BlockHandler) HandleSchedule(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.scheduling.Schedule(c.Request.Context(), scheduling.ScheduleParams{
		UserID:      userID,
		BlockTypeID: req.BlockTypeID,
		Start:       req.Start,
		End:         req.End,
	}, scheduling.Options{
		Mode:           conflict.ParseMode(req.ConflictMode),
		AllowConflicts: req.AllowConflicts,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Block == nil {
		status = http.StatusOK
	}
	c.JSON(status, scheduleResponse{Created: result.Block, Conflicts: result.Conflicts})
}

type rescheduleRequest struct {
	BlockInstanceID string    `json:"block_instance_id" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	End             time.Time `json:"end" binding:"required"`
	ConflictMode    string    `json:"conflict_mode"`
	AllowConflicts  bool      `json:"allow_conflicts"`
}

func (h *BlockHandler) HandleReschedule(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.scheduling.Reschedule(c.Request.Context(), userID, req.BlockInstanceID,
		req.Start, req.End, scheduling.Options{
			Mode:           conflict.ParseMode(req.ConflictMode),
			AllowConflicts: req.AllowConflicts,
		})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, scheduleResponse{Created: result.Block, Conflicts: result.Conflicts})
}

type createBlockTypeRequest struct {
	Name                    string  `json:"name" binding:"required"`
	Color                   string  `json:"color" binding:"required"`
	DefaultDurationMinutes  int     `json:"default_duration_minutes" binding:"required"`
	RecurringEnabled        bool    `json:"recurring_enabled"`
	RecurringDaysOfWeek     []int   `json:"recurring_days_of_week"`
	RecurringTimeOfDay      *string `json:"recurring_time_of_day"`
	RecurringAutoCreate     bool    `json:"recurring_auto_create"`
	RecurringWeeksInAdvance int     `json:"recurring_weeks_in_advance"`
}

type createBlockTypeResponse struct {
	Created    *domain.BlockType `json:"created"`
	Violations []string          `json:"violations,omitempty"`
}

// HandleCreateBlockType validates and persists a block type. Field
// violations answer 400 with the full list.
func (h *BlockHandler) HandleCreateBlockType(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createBlockTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, violations, err := h.scheduling.CreateBlockType(c.Request.Context(), &domain.BlockType{
		UserID:                  userID,
		Name:                    req.Name,
		Color:                   req.Color,
		DefaultDurationMinutes:  req.DefaultDurationMinutes,
		RecurringEnabled:        req.RecurringEnabled,
		RecurringDaysOfWeek:     req.RecurringDaysOfWeek,
		RecurringTimeOfDay:      req.RecurringTimeOfDay,
		RecurringAutoCreate:     req.RecurringAutoCreate,
		RecurringWeeksInAdvance: req.RecurringWeeksInAdvance,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, createBlockTypeResponse{Violations: violations})
		return
	}

	c.JSON(http.StatusCreated, createBlockTypeResponse{Created: created})
}

type suggestRequest struct {
	Start           time.Time `json:"start" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	ConflictMode    string    `json:"conflict_mode"`
	Limit           int       `json:"limit"`
}

type suggestResponse struct {
	Conflicts   []domain.Conflict  `json:"conflicts"`
	Suggestions []domain.TimeRange `json:"suggestions"`
}

// HandleSuggest reports conflicts for a candidate slot and proposes nearby
// free alternatives.
func (h *BlockHandler) HandleSuggest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.DurationMinutes <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_request", "duration_minutes must be positive")
		return
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	end := req.Start.Add(duration)

	conflicts, err := h.resolver.Find(c.Request.Context(), userID, req.Start, end,
		conflict.ParseMode(req.ConflictMode), "")
	if err != nil {
		respondDomainError(c, err)
		return
	}

	opts := conflict.SuggestOptions{Limit: req.Limit}
	suggestions := conflict.Suggest(req.Start, duration, conflicts, opts)

	c.JSON(http.StatusOK, suggestResponse{
		Conflicts:   conflicts,
		Suggestions: suggestions,
	})
}

type generateRecurringResponse struct {
	Created []*domain.BlockInstance `json:"created"`
	Skipped int                     `json:"skipped"`
}

// HandleGenerateRecurring materializes upcoming instances for every
// auto-create recurring block type.
func (h *BlockHandler) HandleGenerateRecurring(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduling.GenerateRecurring(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	slog.InfoContext(c.Request.Context(), "recurring generation requested",
		slog.String("user_id", userID),
		slog.Int("created", len(result.Created)),
		slog.Int("skipped", result.Skipped),
	)

	c.JSON(http.StatusOK, generateRecurringResponse{
		Created: result.Created,
		Skipped: result.Skipped,
	})
}
