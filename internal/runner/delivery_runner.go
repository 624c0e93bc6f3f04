package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/notify"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/queue"
)

const (
	// DefaultPollInterval is how often the delivery loop polls for due items.
	DefaultPollInterval = 30 * time.Second

	// permissionRequestInterval caps how often a denied permission is
	// re-requested from the surface.
	permissionRequestInterval = time.Hour
)

// DeliveryRunner polls the queue and hands due notifications to the OS
// surface. Items are marked sent in one batch after the dispatch pass, so a
// crash mid-pass re-delivers rather than drops.
type DeliveryRunner struct {
	userID   string
	queue    *queue.Service
	notifier domain.Notifier
	recorder domain.DeliveryRecorder
	metrics  *metrics.SchedulingMetrics

	pollInterval time.Duration

	// lastPermissionRequest is only touched inside Tick, which is
	// single-flight via the ticking guard.
	lastPermissionRequest time.Time

	now func() time.Time

	running atomic.Bool
	ticking atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewDeliveryRunner(
	userID string,
	queueService *queue.Service,
	notifier domain.Notifier,
	recorder domain.DeliveryRecorder,
	schedulingMetrics *metrics.SchedulingMetrics,
	pollInterval time.Duration,
) *DeliveryRunner {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &DeliveryRunner{
		userID:       userID,
		queue:        queueService,
		notifier:     notifier,
		recorder:     recorder,
		metrics:      schedulingMetrics,
		pollInterval: pollInterval,
		now:          time.Now,
	}
}

// Start launches the polling loop. Calling Start on a running runner is a
// no-op.
func (r *DeliveryRunner) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(loopCtx)

	slog.InfoContext(ctx, "delivery runner started",
		slog.String("user_id", r.userID),
		slog.Duration("poll_interval", r.pollInterval),
	)
	return nil
}

// Stop cancels the loop and waits for it to exit. Calling Stop on a stopped
// runner is a no-op.
func (r *DeliveryRunner) Stop() {
	if !r.running.CompareAndSwap(true, false) {
		return
	}
	r.cancel()
	<-r.done

	slog.Info("delivery runner stopped", slog.String("user_id", r.userID))
}

func (r *DeliveryRunner) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Tick(ctx); err != nil {
				slog.ErrorContext(ctx, "delivery tick failed",
					slog.String("user_id", r.userID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// Tick runs one delivery pass. Overlapping calls are dropped.
func (r *DeliveryRunner) Tick(ctx context.Context) error {
	if !r.ticking.CompareAndSwap(false, true) {
		return nil
	}
	defer r.ticking.Store(false)

	started := r.now()

	due, err := r.queue.ListDue(ctx, r.userID, started)
	if err != nil {
		return fmt.Errorf("list due notifications: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	granted, err := r.ensurePermission(ctx, started)
	if err != nil {
		// A failed check says nothing about the user's choice; leave
		// the batch unsent and let the next poll retry it.
		return err
	}

	var dispatched, skipped int
	ids := make([]string, 0, len(due))
	for _, item := range due {
		ids = append(ids, item.ID)

		if !granted {
			// Without permission the item can never be presented.
			// Marking it sent keeps the queue from replaying stale
			// notifications once permission is granted later.
			skipped++
			r.recordDelivery(ctx, string(item.Type), "skipped")
			continue
		}

		title, body := notify.RenderMessage(item)
		err := r.notifier.Send(ctx, domain.Notification{
			Title: title,
			Body:  body,
			Extra: notify.RenderExtra(item),
		})
		if err != nil {
			r.recordDelivery(ctx, string(item.Type), "failed")
			r.recordPass(ctx, started, len(due), dispatched, 1, skipped)
			// Nothing is marked sent, so the whole batch comes due
			// again next tick. Items dispatched before the failure may
			// be presented twice; duplicates over drops.
			return fmt.Errorf("dispatch notification %s: %w", item.ID, err)
		}
		dispatched++
		r.recordDelivery(ctx, string(item.Type), "delivered")
	}

	if err := r.queue.MarkSent(ctx, ids); err != nil {
		return fmt.Errorf("mark notifications sent: %w", err)
	}

	slog.InfoContext(ctx, "delivery pass complete",
		slog.String("user_id", r.userID),
		slog.Int("due", len(due)),
		slog.Int("dispatched", dispatched),
		slog.Int("skipped", skipped),
	)

	r.recordPass(ctx, started, len(due), dispatched, 0, skipped)
	return nil
}

// ensurePermission reports whether notifications may be presented. When the
// check comes back denied, permission is requested from the surface at most
// once per permissionRequestInterval.
func (r *DeliveryRunner) ensurePermission(ctx context.Context, now time.Time) (bool, error) {
	granted, err := r.notifier.PermissionGranted(ctx)
	if err != nil {
		return false, fmt.Errorf("check notification permission: %w", err)
	}
	if granted {
		return true, nil
	}
	if now.Sub(r.lastPermissionRequest) < permissionRequestInterval {
		return false, nil
	}
	r.lastPermissionRequest = now

	granted, err = r.notifier.RequestPermission(ctx)
	if err != nil {
		return false, fmt.Errorf("request notification permission: %w", err)
	}
	return granted, nil
}

func (r *DeliveryRunner) recordPass(ctx context.Context, started time.Time, due, dispatched, failed, skipped int) {
	duration := r.now().Sub(started)

	if r.metrics != nil {
		r.metrics.RecordTickDuration(ctx, "delivery", duration)
	}
	if r.recorder == nil {
		return
	}
	err := r.recorder.RecordDeliveries(ctx, []domain.DeliveryRecord{{
		UserID:          r.userID,
		TickTime:        started,
		DueCount:        due,
		DispatchedCount: dispatched,
		FailedCount:     failed,
		SkippedCount:    skipped,
		Duration:        duration,
	}})
	if err != nil {
		slog.WarnContext(ctx, "delivery recording failed",
			slog.String("user_id", r.userID),
			slog.String("error", err.Error()),
		)
	}
}

func (r *DeliveryRunner) recordDelivery(ctx context.Context, typ, outcome string) {
	if r.metrics != nil {
		r.metrics.RecordDelivery(ctx, typ, outcome)
	}
}
