package config

import (
	"os"
	"strconv"
)

const (
	notifierWebhookURLEnv = "NOTIFIER_WEBHOOK_URL"
	notifierMaxRetriesEnv = "NOTIFIER_MAX_RETRIES"

	defaultNotifierMaxRetries = 3
)

type NotifierConfig struct {
	// WebhookURL is the base URL of the notification endpoint. Empty means
	// log-only delivery.
	WebhookURL string
	MaxRetries int
}

func LoadNotifierConfig() *NotifierConfig {
	maxRetries := defaultNotifierMaxRetries
	if v := os.Getenv(notifierMaxRetriesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	return &NotifierConfig{
		WebhookURL: os.Getenv(notifierWebhookURLEnv),
		MaxRetries: maxRetries,
	}
}
