package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// APIError is the error body for every non-2xx response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": APIError{Code: code, Message: message}})
}

// respondDomainError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		respondError(c, http.StatusBadRequest, "invalid_range", err.Error())
	case errors.Is(err, domain.ErrUnknownNotificationType):
		respondError(c, http.StatusBadRequest, "unknown_notification_type", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(c, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrBlockNotFound):
		respondError(c, http.StatusNotFound, "block_not_found", "block instance not found")
	case errors.Is(err, domain.ErrBlockTypeNotFound):
		respondError(c, http.StatusNotFound, "block_type_not_found", "block type not found")
	case errors.Is(err, domain.ErrNotificationNotFound):
		respondError(c, http.StatusNotFound, "notification_not_found", "notification not found")
	default:
		respondError(c, http.StatusInternalServerError, "internal", "internal server error")
	}
}

const userIDHeader = "X-User-ID"

// requireUserID pulls the calling user from the request header. An empty
// header ends the request with a 400.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		respondError(c, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return "", false
	}
	return userID, true
}
