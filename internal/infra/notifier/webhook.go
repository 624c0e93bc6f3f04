package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

// WebhookNotifier delivers notifications by POSTing them to an HTTP
// endpoint, typically the desktop companion that owns the OS notification
// surface. The endpoint also answers permission probes.
type WebhookNotifier struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

func NewWebhookNotifier(baseURL string, maxRetries int) *WebhookNotifier {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &WebhookNotifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

type webhookRequest struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Extra map[string]any `json:"extra,omitempty"`
}

type permissionResponse struct {
	Granted bool `json:"granted"`
}

func (n *WebhookNotifier) Send(ctx context.Context, notification domain.Notification) error {
	reqBody, err := json.Marshal(webhookRequest{
		Title: notification.Title,
		Body:  notification.Body,
		Extra: notification.Extra,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	url := n.baseURL + "/notifications"

	var lastErr error
	for attempt := 0; attempt < n.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying notification dispatch",
				slog.String("title", notification.Title),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := n.post(ctx, url, reqBody); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	slog.Error("all retries exhausted for notification dispatch",
		slog.String("title", notification.Title),
		slog.Int("max_retries", n.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("dispatch notification after %d retries: %w", n.maxRetries, lastErr)
}

func (n *WebhookNotifier) post(ctx context.Context, url string, reqBody []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to reach notification endpoint",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated &&
		resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		slog.Warn("unexpected status from notification endpoint",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (n *WebhookNotifier) PermissionGranted(ctx context.Context) (bool, error) {
	return n.permission(ctx, http.MethodGet)
}

func (n *WebhookNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return n.permission(ctx, http.MethodPost)
}

func (n *WebhookNotifier) permission(ctx context.Context, method string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, method, n.baseURL+"/permission", nil)
	if err != nil {
		return false, fmt.Errorf("create permission request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("check notification permission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected permission status %d", resp.StatusCode)
	}

	var perm permissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&perm); err != nil {
		return false, fmt.Errorf("decode permission response: %w", err)
	}
	return perm.Granted, nil
}
