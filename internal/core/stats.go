package core

import (
	"math"
	"sort"
	"time"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// CalculateStats aggregates counts over the full canonical list. It never
// looks at a filtered view. now anchors the overdue/due-today buckets.
func CalculateStats(tasks []models.Task, now time.Time) models.Stats {
	today := startOfDay(now)

	var s models.Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		switch t.Priority {
		case models.PriorityHigh:
			s.HighPriority++
		case models.PriorityMedium:
			s.MediumPriority++
		case models.PriorityLow:
			s.LowPriority++
		}
		if t.DueDate != nil {
			dueDay := startOfDay(*t.DueDate)
			if dueDay.Before(today) {
				s.Overdue++
			} else if dueDay.Equal(today) {
				s.DueToday++
			}
		}
		if t.Recurrence != models.RecurrenceNone && t.Recurrence != "" {
			s.Recurring++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// Streak counts consecutive calendar days with at least one completion,
// walking backward from today. A streak whose most recent completion was
// yesterday still counts: each distinct completion day may sit at the
// current streak depth or one day beyond it.
func Streak(tasks []models.Task, now time.Time) int {
	today := utcDay(now)

	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		day := utcDay(*t.CompletedAt)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 0
	for _, day := range days {
		diff := int(today.Sub(day).Hours() / 24)
		if diff == streak || diff == streak+1 {
			streak++
		} else {
			break
		}
	}
	return streak
}

// utcDay pins a wall-clock date to UTC midnight. Day differences computed
// on these values are exact multiples of 24h, which local midnights are not
// around daylight-saving transitions.
func utcDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
