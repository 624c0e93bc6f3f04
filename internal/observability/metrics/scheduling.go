package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	schedulingMeterName = "scheduling.core"
)

// SchedulingMetrics instruments the reconciliation and delivery loops. All
// call sites tolerate a nil receiver holder so tests can pass nil.
type SchedulingMetrics struct {
	notificationsReconciled metric.Int64Counter
	notificationsInserted   metric.Int64Counter
	notificationsDelivered  metric.Int64Counter
	tickDuration            metric.Float64Histogram
}

func NewSchedulingMetrics() (*SchedulingMetrics, error) {
	meter := otel.Meter(schedulingMeterName)

	notificationsReconciled, err := meter.Int64Counter(
		"scheduling_notifications_reconciled_total",
		metric.WithDescription("Total candidate notifications considered during reconciliation"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	notificationsInserted, err := meter.Int64Counter(
		"scheduling_notifications_inserted_total",
		metric.WithDescription("Total notifications inserted into the queue"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	notificationsDelivered, err := meter.Int64Counter(
		"scheduling_notifications_delivered_total",
		metric.WithDescription("Total notifications dispatched to the notification surface"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	tickDuration, err := meter.Float64Histogram(
		"scheduling_tick_duration_seconds",
		metric.WithDescription("Runner tick duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulingMetrics{
		notificationsReconciled: notificationsReconciled,
		notificationsInserted:   notificationsInserted,
		notificationsDelivered:  notificationsDelivered,
		tickDuration:            tickDuration,
	}, nil
}

func (m *SchedulingMetrics) RecordReconciliation(ctx context.Context, candidates, inserted int) {
	m.notificationsReconciled.Add(ctx, int64(candidates))
	m.notificationsInserted.Add(ctx, int64(inserted))
}

func (m *SchedulingMetrics) RecordDelivery(ctx context.Context, typ string, outcome string) {
	m.notificationsDelivered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", typ),
		attribute.String("outcome", outcome),
	))
}

func (m *SchedulingMetrics) RecordTickDuration(ctx context.Context, runner string, duration time.Duration) {
	m.tickDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("runner", runner),
	))
}
