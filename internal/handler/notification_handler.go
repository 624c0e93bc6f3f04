package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/actions"
)

type NotificationHandler struct {
	actions *actions.Service
}

func NewNotificationHandler(actionsService *actions.Service) *NotificationHandler {
	return &NotificationHandler{actions: actionsService}
}

type actionRequest struct {
	Action string `json:"action" binding:"required"`

	// start / skip
	BlockInstanceID string `json:"block_instance_id"`

	// snooze
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Minutes int             `json:"minutes"`
}

// HandleAction executes a notification action button: start the block,
// snooze the reminder, or skip the block.
func (h *NotificationHandler) HandleAction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "start":
		if req.BlockInstanceID == "" {
			respondError(c, http.StatusBadRequest, "invalid_request", "block_instance_id is required")
			return
		}
		block, err := h.actions.StartBlock(ctx, userID, req.BlockInstanceID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"block": block})

	case "skip":
		if req.BlockInstanceID == "" {
			respondError(c, http.StatusBadRequest, "invalid_request", "block_instance_id is required")
			return
		}
		block, err := h.actions.SkipBlock(ctx, userID, req.BlockInstanceID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"block": block})

	case "snooze":
		item, err := h.actions.Snooze(ctx, userID, actions.SnoozeParams{
			Type:    domain.NotificationType(req.Type),
			Payload: req.Payload,
			Minutes: req.Minutes,
		})
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notification": item})

	default:
		respondError(c, http.StatusBadRequest, "unknown_action", "action must be start, snooze, or skip")
	}
}
