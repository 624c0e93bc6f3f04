package domain

import "errors"

var (
	ErrInvalidRange         = errors.New("invalid time range")
	ErrBlockNotFound        = errors.New("block instance not found")
	ErrBlockTypeNotFound    = errors.New("block type not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrInvalidTransition       = errors.New("invalid block status transition")
	ErrUnknownNotificationType = errors.New("unknown notification type")
)
