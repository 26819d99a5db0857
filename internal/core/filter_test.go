package core

import (
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/pkg/models"
)

var filterNow = time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

func taskAt(id string, due *time.Time, completed bool) models.Task {
	t := models.Task{
		ID:        id,
		Title:     "Task " + id,
		Priority:  models.PriorityMedium,
		Category:  models.CategoryWork,
		Completed: completed,
		CreatedAt: filterNow.AddDate(0, 0, -1),
		DueDate:   due,
	}
	if completed {
		completedAt := filterNow.Add(-time.Hour)
		t.CompletedAt = &completedAt
	}
	return t
}

func timePtr(t time.Time) *time.Time { return &t }

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestApplyFilters_Type(t *testing.T) {
	yesterday := timePtr(filterNow.AddDate(0, 0, -1))
	todayEvening := timePtr(time.Date(2024, 2, 15, 20, 0, 0, 0, time.UTC))
	tomorrow := timePtr(filterNow.AddDate(0, 0, 1))

	tasks := []models.Task{
		taskAt("done", nil, true),
		taskAt("open", nil, false),
		taskAt("today", todayEvening, false),
		taskAt("future", tomorrow, false),
		taskAt("past", yesterday, false),
		taskAt("future-done", tomorrow, true),
	}

	tests := []struct {
		filterType models.FilterType
		want       map[string]bool
	}{
		{models.FilterAll, map[string]bool{"done": true, "open": true, "today": true, "future": true, "past": true, "future-done": true}},
		{models.FilterActive, map[string]bool{"open": true, "today": true, "future": true, "past": true}},
		{models.FilterCompleted, map[string]bool{"done": true, "future-done": true}},
		{models.FilterToday, map[string]bool{"today": true}},
		{models.FilterUpcoming, map[string]bool{"future": true}},
	}

	for _, tc := range tests {
		t.Run(string(tc.filterType), func(t *testing.T) {
			filters := models.DefaultFilters()
			filters.Type = tc.filterType
			got := ApplyFilters(tasks, filters, filterNow)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d tasks, got %v", len(tc.want), ids(got))
			}
			for _, task := range got {
				if !tc.want[task.ID] {
					t.Fatalf("unexpected task %q in %v", task.ID, ids(got))
				}
			}
		})
	}
}

func TestApplyFilters_PriorityAndCategory(t *testing.T) {
	a := taskAt("a", nil, false)
	a.Priority = models.PriorityHigh
	b := taskAt("b", nil, false)
	b.Category = models.CategoryHealth

	filters := models.DefaultFilters()
	filters.Priority = string(models.PriorityHigh)
	got := ApplyFilters([]models.Task{a, b}, filters, filterNow)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("priority filter should keep only a, got %v", ids(got))
	}

	filters = models.DefaultFilters()
	filters.Category = string(models.CategoryHealth)
	got = ApplyFilters([]models.Task{a, b}, filters, filterNow)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("category filter should keep only b, got %v", ids(got))
	}
}

func TestApplyFilters_Search(t *testing.T) {
	a := taskAt("a", nil, false)
	a.Title = "Buy groceries"
	b := taskAt("b", nil, false)
	b.Description = "pick up GROCERY bags"
	c := taskAt("c", nil, false)
	c.Tags = []string{"groceries", "errand"}
	d := taskAt("d", nil, false)
	d.Title = "Unrelated"

	filters := models.DefaultFilters()
	filters.SearchQuery = "grocer"
	got := ApplyFilters([]models.Task{a, b, c, d}, filters, filterNow)
	if len(got) != 3 {
		t.Fatalf("case-insensitive search should match title, description and tags, got %v", ids(got))
	}
	for _, task := range got {
		if task.ID == "d" {
			t.Fatal("search must not match unrelated tasks")
		}
	}
}

func TestApplyFilters_Idempotent(t *testing.T) {
	tasks := []models.Task{
		taskAt("a", timePtr(filterNow.AddDate(0, 0, 2)), false),
		taskAt("b", nil, true),
		taskAt("c", nil, false),
	}
	filters := models.DefaultFilters()
	filters.Type = models.FilterActive

	first := ApplyFilters(tasks, filters, filterNow)
	second := ApplyFilters(tasks, filters, filterNow)
	if len(first) != len(second) {
		t.Fatalf("same inputs produced different sizes: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("same inputs produced different orders: %v vs %v", ids(first), ids(second))
		}
	}
}

func TestSortTasks_Order(t *testing.T) {
	// A: high priority, no due date. B: high priority, dated. C: low priority.
	a := taskAt("A", nil, false)
	a.Priority = models.PriorityHigh
	b := taskAt("B", timePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)), false)
	b.Priority = models.PriorityHigh
	c := taskAt("C", nil, false)
	c.Priority = models.PriorityLow

	tasks := []models.Task{a, b, c}
	SortTasks(tasks)

	want := []string{"B", "A", "C"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Fatalf("expected order %v, got %v", want, ids(tasks))
		}
	}
}

func TestSortTasks_CompletedLast(t *testing.T) {
	done := taskAt("done", nil, true)
	done.Priority = models.PriorityHigh
	open := taskAt("open", nil, false)
	open.Priority = models.PriorityLow

	tasks := []models.Task{done, open}
	SortTasks(tasks)
	if tasks[0].ID != "open" {
		t.Fatalf("incomplete tasks must sort before completed ones, got %v", ids(tasks))
	}
}

func TestSortTasks_NewestCreatedFirst(t *testing.T) {
	older := taskAt("older", nil, false)
	older.CreatedAt = filterNow.AddDate(0, 0, -5)
	newer := taskAt("newer", nil, false)
	newer.CreatedAt = filterNow.AddDate(0, 0, -1)

	tasks := []models.Task{older, newer}
	SortTasks(tasks)
	if tasks[0].ID != "newer" {
		t.Fatalf("newer tasks must sort first on the final tie-break, got %v", ids(tasks))
	}
}

func TestSortTasks_EarlierDueDateFirst(t *testing.T) {
	late := taskAt("late", timePtr(filterNow.AddDate(0, 0, 9)), false)
	soon := taskAt("soon", timePtr(filterNow.AddDate(0, 0, 2)), false)

	tasks := []models.Task{late, soon}
	SortTasks(tasks)
	if tasks[0].ID != "soon" {
		t.Fatalf("earlier due date must sort first, got %v", ids(tasks))
	}
}
