package notifier

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// LogNotifier writes notifications to the log instead of dispatching them.
// Used when no webhook endpoint is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Send(ctx context.Context, n domain.Notification) error {
	slog.InfoContext(ctx, "notification (log only)",
		slog.String("title", n.Title),
		slog.String("body", n.Body),
	)
	return nil
}

func (LogNotifier) PermissionGranted(context.Context) (bool, error) {
	return true, nil
}

func (LogNotifier) RequestPermission(context.Context) (bool, error) {
	return true, nil
}
