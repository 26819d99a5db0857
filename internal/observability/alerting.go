package observability

import (
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert is a triggered alert condition over the task list.
type Alert struct {
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts fire.
type AlertThresholds struct {
	// MaxOverdue fires a high alert once this many tasks are overdue.
	MaxOverdue int `yaml:"max_overdue"`
	// MaxDueToday fires a medium alert once this many tasks are due today.
	MaxDueToday int `yaml:"max_due_today"`
	// StreakAtRisk fires a low alert when a streak of at least this many
	// days has no completion yet today.
	StreakAtRisk int `yaml:"streak_at_risk"`
}

// DefaultAlertThresholds returns sensible defaults.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		MaxOverdue:   1,
		MaxDueToday:  3,
		StreakAtRisk: 3,
	}
}

// AlertEngine evaluates alert conditions against the canonical task list.
type AlertEngine interface {
	Evaluate(tasks []models.Task, now time.Time) []Alert
}

type alertEngine struct {
	thresholds AlertThresholds
}

// NewAlertEngine creates an AlertEngine with the given thresholds.
func NewAlertEngine(thresholds AlertThresholds) AlertEngine {
	return &alertEngine{thresholds: thresholds}
}

// Evaluate derives alerts from the current stats and streak.
func (e *alertEngine) Evaluate(tasks []models.Task, now time.Time) []Alert {
	stats := core.CalculateStats(tasks, now)
	streak := core.Streak(tasks, now)

	var alerts []Alert

	if e.thresholds.MaxOverdue > 0 && stats.Overdue >= e.thresholds.MaxOverdue {
		alerts = append(alerts, Alert{
			Condition:   "overdue_tasks",
			Severity:    SeverityHigh,
			Message:     fmt.Sprintf("%d task(s) overdue", stats.Overdue),
			TriggeredAt: now,
		})
	}

	if e.thresholds.MaxDueToday > 0 && stats.DueToday >= e.thresholds.MaxDueToday {
		alerts = append(alerts, Alert{
			Condition:   "heavy_day",
			Severity:    SeverityMedium,
			Message:     fmt.Sprintf("%d task(s) due today", stats.DueToday),
			TriggeredAt: now,
		})
	}

	if e.thresholds.StreakAtRisk > 0 && streak >= e.thresholds.StreakAtRisk && !completedToday(tasks, now) {
		alerts = append(alerts, Alert{
			Condition:   "streak_at_risk",
			Severity:    SeverityLow,
			Message:     fmt.Sprintf("%d-day streak has no completion yet today", streak),
			TriggeredAt: now,
		})
	}

	return alerts
}

func completedToday(tasks []models.Task, now time.Time) bool {
	year, month, day := now.Date()
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		cy, cm, cd := t.CompletedAt.Date()
		if cy == year && cm == month && cd == day {
			return true
		}
	}
	return false
}
