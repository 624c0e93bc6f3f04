package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
	"github.com/KasumiMercury/planner-block-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/planner-block-scheduling/internal/service/queue"
)

const (
	// DefaultSchedulerInterval is the periodic tick cadence.
	DefaultSchedulerInterval = 5 * time.Minute
	// DefaultDebounce is the quiet period after a change event before a
	// tick fires. Further events within the window restart it.
	DefaultDebounce = 3 * time.Second
	// DefaultMinTickInterval drops ticks that arrive too soon after the
	// previous one, regardless of source.
	DefaultMinTickInterval = time.Second

	// cleanupEvery is how often old sent rows are purged.
	cleanupEvery = 24 * time.Hour
)

// SchedulerRunner keeps one user's notification queue reconciled. Ticks come
// from three sources: a periodic interval, debounced change-feed events, and
// explicit Tick calls.
type SchedulerRunner struct {
	userID     string
	blocks     domain.BlockRepository
	blockTypes domain.BlockTypeRepository
	queue      *queue.Service
	feed       domain.ChangeFeed
	metrics    *metrics.SchedulingMetrics

	interval        time.Duration
	lookahead       time.Duration
	debounce        time.Duration
	minTickInterval time.Duration
	cleanupDays     int

	now func() time.Time

	running  atomic.Bool
	ticking  atomic.Bool
	lastTick atomic.Int64

	kick        chan struct{}
	cancel      context.CancelFunc
	done        chan struct{}
	unsubscribe func()
}

// SchedulerOptions tune the runner. Zero values fall back to defaults.
type SchedulerOptions struct {
	Interval        time.Duration
	Lookahead       time.Duration
	Debounce        time.Duration
	MinTickInterval time.Duration
	// CleanupDays is how long sent rows are retained. Zero uses the
	// queue default.
	CleanupDays int
}

func NewSchedulerRunner(
	userID string,
	blocks domain.BlockRepository,
	blockTypes domain.BlockTypeRepository,
	queueService *queue.Service,
	feed domain.ChangeFeed,
	schedulingMetrics *metrics.SchedulingMetrics,
	opts SchedulerOptions,
) *SchedulerRunner {
	if opts.Interval <= 0 {
		opts.Interval = DefaultSchedulerInterval
	}
	if opts.Lookahead <= 0 {
		opts.Lookahead = queue.DefaultLookaheadMinutes * time.Minute
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinTickInterval <= 0 {
		opts.MinTickInterval = DefaultMinTickInterval
	}

	return &SchedulerRunner{
		userID:          userID,
		blocks:          blocks,
		blockTypes:      blockTypes,
		queue:           queueService,
		feed:            feed,
		metrics:         schedulingMetrics,
		interval:        opts.Interval,
		lookahead:       opts.Lookahead,
		debounce:        opts.Debounce,
		minTickInterval: opts.MinTickInterval,
		cleanupDays:     opts.CleanupDays,
		now:             time.Now,
		kick:            make(chan struct{}, 1),
	}
}

// Start launches the tick loop and subscribes to the change feed. Calling
// Start on a running runner is a no-op.
func (r *SchedulerRunner) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	if r.feed != nil {
		unsubscribe, err := r.feed.Subscribe(loopCtx, r.userID, r.notifyChange)
		if err != nil {
			cancel()
			r.running.Store(false)
			return fmt.Errorf("subscribe change feed: %w", err)
		}
		r.unsubscribe = unsubscribe
	}

	go r.loop(loopCtx)

	// Initial reconciliation so restarts pick up whatever changed while
	// the runner was down.
	if err := r.Tick(loopCtx); err != nil {
		slog.WarnContext(loopCtx, "initial scheduler tick failed",
			slog.String("user_id", r.userID),
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "scheduler runner started",
		slog.String("user_id", r.userID),
		slog.Duration("interval", r.interval),
		slog.Duration("lookahead", r.lookahead),
	)
	return nil
}

// Stop tears the loop down and waits for it to exit. Calling Stop on a
// stopped runner is a no-op.
func (r *SchedulerRunner) Stop() {
	if !r.running.CompareAndSwap(true, false) {
		return
	}
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	r.cancel()
	<-r.done

	slog.Info("scheduler runner stopped", slog.String("user_id", r.userID))
}

func (r *SchedulerRunner) notifyChange() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

func (r *SchedulerRunner) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	cleanup := time.NewTicker(cleanupEvery)
	defer cleanup.Stop()

	var (
		debounceTimer *time.Timer
		debounceC     <-chan time.Time
	)
	stopDebounce := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
			debounceTimer = nil
			debounceC = nil
		}
	}
	defer stopDebounce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tickLogged(ctx, "interval")
		case <-cleanup.C:
			r.cleanupOld(ctx)
		case <-r.kick:
			// Restart the quiet period on every event.
			stopDebounce()
			debounceTimer = time.NewTimer(r.debounce)
			debounceC = debounceTimer.C
		case <-debounceC:
			debounceTimer = nil
			debounceC = nil
			r.tickLogged(ctx, "change")
		}
	}
}

func (r *SchedulerRunner) cleanupOld(ctx context.Context) {
	deleted, err := r.queue.CleanupOld(ctx, r.userID, r.cleanupDays)
	if err != nil {
		slog.ErrorContext(ctx, "notification cleanup failed",
			slog.String("user_id", r.userID),
			slog.String("error", err.Error()),
		)
		return
	}
	if deleted > 0 {
		slog.InfoContext(ctx, "old notifications cleaned up",
			slog.String("user_id", r.userID),
			slog.Int64("deleted", deleted),
		)
	}
}

func (r *SchedulerRunner) tickLogged(ctx context.Context, source string) {
	if err := r.Tick(ctx); err != nil {
		slog.ErrorContext(ctx, "scheduler tick failed",
			slog.String("user_id", r.userID),
			slog.String("source", source),
			slog.String("error", err.Error()),
		)
	}
}

// Tick runs one reconciliation pass. Overlapping calls and calls arriving
// within the minimum tick interval are dropped silently; the next tick
// covers them because reconciliation always recomputes from current state.
func (r *SchedulerRunner) Tick(ctx context.Context) error {
	if !r.ticking.CompareAndSwap(false, true) {
		return nil
	}
	defer r.ticking.Store(false)

	started := r.now()
	last := r.lastTick.Load()
	if last != 0 && started.Sub(time.Unix(0, last)) < r.minTickInterval {
		return nil
	}
	r.lastTick.Store(started.UnixNano())

	if err := r.reconcile(ctx, started); err != nil {
		return err
	}

	if r.metrics != nil {
		r.metrics.RecordTickDuration(ctx, "scheduler", r.now().Sub(started))
	}
	return nil
}

func (r *SchedulerRunner) reconcile(ctx context.Context, now time.Time) error {
	// Candidate targets all precede or equal a block's start, so the
	// planned_start window bounds everything the queue can accept.
	blocks, err := r.blocks.ListBlocksStartingIn(ctx, r.userID, now, now.Add(r.lookahead))
	if err != nil {
		return fmt.Errorf("list blocks: %w", err)
	}

	typeMeta, err := r.loadTypeMeta(ctx)
	if err != nil {
		return err
	}

	return r.queue.ScheduleBlocks(ctx, r.userID, blocks, now, r.lookahead, typeMeta)
}

func (r *SchedulerRunner) loadTypeMeta(ctx context.Context) (map[string]domain.BlockTypeMeta, error) {
	types, err := r.blockTypes.ListBlockTypes(ctx, r.userID)
	if err != nil {
		return nil, fmt.Errorf("list block types: %w", err)
	}
	meta := make(map[string]domain.BlockTypeMeta, len(types))
	for _, bt := range types {
		meta[bt.ID] = domain.BlockTypeMeta{Name: bt.Name, Color: bt.Color}
	}
	return meta, nil
}
