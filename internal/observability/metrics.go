package observability

import (
	"fmt"
	"time"
)

// Metrics aggregates the event-log history into activity counts.
type Metrics struct {
	TasksCreated   int            `json:"tasks_created"`
	TasksCompleted int            `json:"tasks_completed"`
	TasksDeleted   int            `json:"tasks_deleted"`
	TasksRecurred  int            `json:"tasks_recurred"`
	RemindersFired int            `json:"reminders_fired"`
	UndoCount      int            `json:"undo_count"`
	RedoCount      int            `json:"redo_count"`
	EventsByType   map[string]int `json:"events_by_type"`
	EventCount     int            `json:"event_count"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from the given
// EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads every event since the given time and tallies it.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{EventsByType: make(map[string]int)}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		m.EventsByType[event.Type]++
		switch event.Type {
		case "task.created":
			m.TasksCreated++
		case "task.completed":
			m.TasksCompleted++
		case "task.deleted":
			m.TasksDeleted++
		case "task.recurred":
			m.TasksRecurred++
		case "reminder.fired":
			m.RemindersFired++
		case "history.undo":
			m.UndoCount++
		case "history.redo":
			m.RedoCount++
		}
	}
	return m, nil
}
