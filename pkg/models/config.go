package models

import "time"

// Config holds the merged application configuration loaded from .taskdeckrc.
type Config struct {
	// StorageDir is the directory holding tasks.yaml and the event log.
	StorageDir string

	// PollInterval is how often the reminder scheduler checks for due
	// reminders. WindowAhead and WindowBehind bound when a reminder fires:
	// at most WindowAhead before its instant, at most WindowBehind after.
	// WindowBehind is clamped to at least PollInterval so a reminder can
	// never fall between two ticks.
	PollInterval time.Duration
	WindowAhead  time.Duration
	WindowBehind time.Duration

	NotificationsEnabled bool
	SlackWebhookURL      string

	DefaultPriority Priority
	DefaultCategory Category

	// HistoryLimit caps retained undo snapshots. 0 means unlimited.
	HistoryLimit int
}

// DefaultConfig returns the configuration used when no .taskdeckrc exists.
func DefaultConfig() Config {
	return Config{
		PollInterval:         10 * time.Second,
		WindowAhead:          30 * time.Second,
		WindowBehind:         60 * time.Second,
		NotificationsEnabled: true,
		DefaultPriority:      PriorityMedium,
		DefaultCategory:      CategoryOther,
	}
}
