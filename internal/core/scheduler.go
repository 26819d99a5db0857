package core

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// Notifier delivers a reminder for a task to the outside world. The
// scheduler never inspects the outcome beyond logging a failure.
type Notifier interface {
	Notify(task models.Task) error
}

// ReminderScheduler polls the task store for due reminders and fires each
// one exactly once per occurrence. A reminder fires when its instant is at
// most WindowAhead in the future or at most WindowBehind in the past.
//
// Two layers prevent duplicate firing: an in-memory set keyed by task ID
// covers the current session even before MarkNotified has persisted, and
// the task's LastNotified field is the durable guard across sessions.
type ReminderScheduler struct {
	store    *TaskStore
	notifier Notifier    // may be nil
	events   EventLogger // may be nil

	interval     time.Duration
	windowAhead  time.Duration
	windowBehind time.Duration

	now      func() time.Time
	notified map[string]struct{}
}

// NewReminderScheduler creates a scheduler over the given store. The poll
// interval and firing window come from cfg; the behind window is clamped to
// at least one poll interval so a reminder can never fall between ticks.
func NewReminderScheduler(store *TaskStore, notifier Notifier, events EventLogger, cfg models.Config) *ReminderScheduler {
	windowBehind := cfg.WindowBehind
	if windowBehind < cfg.PollInterval {
		windowBehind = cfg.PollInterval
	}
	return &ReminderScheduler{
		store:        store,
		notifier:     notifier,
		events:       events,
		interval:     cfg.PollInterval,
		windowAhead:  cfg.WindowAhead,
		windowBehind: windowBehind,
		now:          time.Now,
		notified:     make(map[string]struct{}),
	}
}

// Run checks once immediately, then on every tick until the context is
// cancelled.
func (s *ReminderScheduler) Run(ctx context.Context) {
	s.check()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check()
		}
	}
}

// check scans the canonical list and fires every due, not-yet-notified
// reminder. Notification failures are logged and never stop the scan or
// block the MarkNotified bookkeeping.
func (s *ReminderScheduler) check() {
	now := s.now()

	for _, task := range s.store.All() {
		if task.ReminderTime == nil || task.Completed || task.LastNotified != nil {
			continue
		}
		if _, done := s.notified[task.ID]; done {
			continue
		}

		delta := task.ReminderTime.Sub(now)
		if delta > s.windowAhead || delta <= -s.windowBehind {
			continue
		}

		s.notified[task.ID] = struct{}{}
		if s.notifier != nil {
			if err := s.notifier.Notify(task); err != nil {
				s.logEvent("reminder.notify_error", map[string]any{
					"task_id": task.ID, "error": err.Error(),
				})
			}
		}
		_ = s.store.MarkNotified(task.ID)
		s.logEvent("reminder.fired", map[string]any{
			"task_id": task.ID, "title": task.Title,
		})
	}
}

func (s *ReminderScheduler) logEvent(eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	_ = s.events.LogEvent(eventType, data)
}
