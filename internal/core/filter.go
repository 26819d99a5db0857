package core

import (
	"sort"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// ApplyFilters derives the visible task view: it keeps tasks matching every
// filter criterion, then sorts them. The input list is never modified; the
// result is a fresh slice. now anchors the today/upcoming criteria.
func ApplyFilters(tasks []models.Task, filters models.TaskFilters, now time.Time) []models.Task {
	today := startOfDay(now)

	var out []models.Task
	for _, t := range tasks {
		if matchesFilters(t, filters, today) {
			out = append(out, t)
		}
	}
	SortTasks(out)
	return out
}

// matchesFilters applies all criteria with AND logic. today must be a
// midnight-truncated time.
func matchesFilters(t models.Task, f models.TaskFilters, today time.Time) bool {
	switch f.Type {
	case models.FilterActive:
		if t.Completed {
			return false
		}
	case models.FilterCompleted:
		if !t.Completed {
			return false
		}
	case models.FilterToday:
		if t.DueDate == nil || !startOfDay(*t.DueDate).Equal(today) {
			return false
		}
	case models.FilterUpcoming:
		if t.DueDate == nil || !startOfDay(*t.DueDate).After(today) || t.Completed {
			return false
		}
	}

	if f.Priority != "" && f.Priority != models.FilterAny && string(t.Priority) != f.Priority {
		return false
	}
	if f.Category != "" && f.Category != models.FilterAny && string(t.Category) != f.Category {
		return false
	}

	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		if !strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) &&
			!anyTagContains(t.Tags, query) {
			return false
		}
	}

	return true
}

func anyTagContains(tags []string, query string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// SortTasks orders a task view in place: incomplete before completed, then
// by priority severity, then earlier due date (dated tasks before undated),
// then newest creation time.
func SortTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// startOfDay truncates a time to midnight in its own location, giving the
// calendar date used by all day-granularity comparisons.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
