package config

import (
	"os"
	"strconv"
	"time"
)

const (
	schedulerIntervalMinutesEnv = "SCHEDULER_INTERVAL_MINUTES"
	lookaheadMinutesEnv         = "NOTIFICATION_LOOKAHEAD_MINUTES"
	debounceMillisEnv           = "SCHEDULER_DEBOUNCE_MS"
	minTickIntervalMillisEnv    = "SCHEDULER_MIN_TICK_MS"
	deliveryPollSecondsEnv      = "DELIVERY_POLL_SECONDS"
	cleanupDaysEnv              = "NOTIFICATION_CLEANUP_DAYS"

	defaultSchedulerIntervalMinutes = 5
	defaultLookaheadMinutes         = 60
	defaultDebounceMillis           = 3000
	defaultMinTickIntervalMillis    = 1000
	defaultDeliveryPollSeconds      = 30
	defaultCleanupDays              = 30
)

type SchedulerConfig struct {
	Interval        time.Duration
	Lookahead       time.Duration
	Debounce        time.Duration
	MinTickInterval time.Duration
	DeliveryPoll    time.Duration
	CleanupDays     int
}

func LoadSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		Interval:        envDuration(schedulerIntervalMinutesEnv, defaultSchedulerIntervalMinutes, time.Minute),
		Lookahead:       envDuration(lookaheadMinutesEnv, defaultLookaheadMinutes, time.Minute),
		Debounce:        envDuration(debounceMillisEnv, defaultDebounceMillis, time.Millisecond),
		MinTickInterval: envDuration(minTickIntervalMillisEnv, defaultMinTickIntervalMillis, time.Millisecond),
		DeliveryPoll:    envDuration(deliveryPollSecondsEnv, defaultDeliveryPollSeconds, time.Second),
		CleanupDays:     envInt(cleanupDaysEnv, defaultCleanupDays),
	}
}

func envDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(envInt(key, defaultValue)) * unit
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
