package domain

import (
	"context"
	"time"
)

// DeliveryRecord captures the outcome of one delivery-runner tick for
// offline analysis.
type DeliveryRecord struct {
	UserID          string
	TickTime        time.Time
	DueCount        int
	DispatchedCount int
	FailedCount     int
	SkippedCount    int
	Duration        time.Duration
}

// DeliveryRecorder persists delivery outcomes to a time-series store.
// Implementations must be safe to call with an empty batch.
type DeliveryRecorder interface {
	RecordDeliveries(ctx context.Context, records []DeliveryRecord) error
	Close() error
}
