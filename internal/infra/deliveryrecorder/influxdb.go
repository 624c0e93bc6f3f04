package deliveryrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

// NewRecorder builds the delivery recorder from config. Missing credentials
// degrade to the noop recorder instead of failing startup.
func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, delivery result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "delivery result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("org", cfg.InfluxDBOrg),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordDeliveries(ctx context.Context, records []domain.DeliveryRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		point := influxdb2.NewPoint(
			"delivery_result",
			map[string]string{
				"user_id": record.UserID,
			},
			map[string]any{
				"due_count":        record.DueCount,
				"dispatched_count": record.DispatchedCount,
				"failed_count":     record.FailedCount,
				"skipped_count":    record.SkippedCount,
				"duration_seconds": record.Duration.Seconds(),
				"tick_unix":        record.TickTime.Unix(),
			},
			time.Now(),
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write delivery result to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("user_id", record.UserID),
				slog.Time("tick", record.TickTime),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	r.client.Close()
	return nil
}
