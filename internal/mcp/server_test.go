package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/observability"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// memSlot is an in-memory core.Slot for tests.
type memSlot struct {
	tasks []models.Task
}

func (m *memSlot) Load() ([]models.Task, error)   { return m.tasks, nil }
func (m *memSlot) Save(tasks []models.Task) error { m.tasks = tasks; return nil }

func newTestServer(t *testing.T) (*Server, *core.TaskStore) {
	t.Helper()
	store := core.NewTaskStore(&memSlot{}, core.NewHistory(0), nil)
	if err := store.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server := NewServer(store, observability.NewAlertEngine(observability.DefaultAlertThresholds()), nil, "test")
	return server, store
}

func TestHandleAddTask(t *testing.T) {
	server, store := newTestServer(t)

	result, out, err := server.handleAddTask(context.Background(), nil, addTaskInput{
		Title:    "Write report",
		Priority: "high",
		Category: "work",
		DueDate:  "2024-02-20T00:00:00Z",
		Tags:     []string{"q1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatalf("unexpected tool error: %+v", result)
	}
	if out.ID == "" || out.Title != "Write report" || out.Priority != "high" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if len(store.All()) != 1 {
		t.Fatal("task not added to the store")
	}
}

func TestHandleAddTask_MissingTitle(t *testing.T) {
	server, _ := newTestServer(t)

	result, _, err := server.handleAddTask(context.Background(), nil, addTaskInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected a tool error for missing title")
	}
}

func TestHandleAddTask_InvalidPriority(t *testing.T) {
	server, _ := newTestServer(t)

	result, _, err := server.handleAddTask(context.Background(), nil, addTaskInput{
		Title:    "X",
		Priority: "urgent",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected a tool error for invalid priority")
	}
}

func TestHandleListTasks_Filters(t *testing.T) {
	server, store := newTestServer(t)
	if _, err := store.Add(core.TaskFields{Title: "A", Priority: models.PriorityHigh, Category: models.CategoryWork}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Add(core.TaskFields{Title: "B", Priority: models.PriorityLow, Category: models.CategoryHealth}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, out, err := server.handleListTasks(context.Background(), nil, listTasksInput{Priority: "high"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 1 || out.Tasks[0].Title != "A" {
		t.Fatalf("priority filter not applied: %+v", out)
	}
}

func TestHandleToggleComplete(t *testing.T) {
	server, store := newTestServer(t)
	task, err := store.Add(core.TaskFields{Title: "A", Priority: models.PriorityMedium, Category: models.CategoryOther})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, out, err := server.handleToggleComplete(context.Background(), nil, taskIDInput{TaskID: task.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatalf("unexpected tool error: %+v", result)
	}
	if out.Message == "" {
		t.Fatal("expected a confirmation message")
	}

	got, _ := store.Get(task.ID)
	if !got.Completed {
		t.Fatal("task not completed")
	}
}

func TestHandleToggleComplete_UnknownID(t *testing.T) {
	server, _ := newTestServer(t)

	result, _, err := server.handleToggleComplete(context.Background(), nil, taskIDInput{TaskID: "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected a tool error for unknown ID")
	}
}

func TestHandleGetStats(t *testing.T) {
	server, store := newTestServer(t)
	a, _ := store.Add(core.TaskFields{Title: "A", Priority: models.PriorityMedium, Category: models.CategoryOther})
	_, _ = store.Add(core.TaskFields{Title: "B", Priority: models.PriorityMedium, Category: models.CategoryOther})
	_ = store.ToggleComplete(a.ID)

	_, out, err := server.handleGetStats(context.Background(), nil, getStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 2 || out.Completed != 1 || out.CompletionRate != 50 {
		t.Fatalf("unexpected stats: %+v", out)
	}
	if out.Streak != 1 {
		t.Fatalf("expected streak 1 after completing today, got %d", out.Streak)
	}
}

func TestHandleUndoRedo(t *testing.T) {
	server, store := newTestServer(t)
	_, _ = store.Add(core.TaskFields{Title: "A", Priority: models.PriorityMedium, Category: models.CategoryOther})
	_, _ = store.Add(core.TaskFields{Title: "B", Priority: models.PriorityMedium, Category: models.CategoryOther})

	_, out, err := server.handleUndo(context.Background(), nil, historyInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Applied || !out.CanRedo {
		t.Fatalf("undo should apply and open a redo branch: %+v", out)
	}
	if len(store.All()) != 1 {
		t.Fatalf("expected 1 task after undo, got %d", len(store.All()))
	}

	_, out, err = server.handleRedo(context.Background(), nil, historyInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Applied || out.CanRedo {
		t.Fatalf("redo should apply and exhaust the branch: %+v", out)
	}
}

func TestHandleGetAlerts(t *testing.T) {
	server, store := newTestServer(t)
	due := time.Now().AddDate(0, 0, -2)
	_, _ = store.Add(core.TaskFields{Title: "Late", Priority: models.PriorityMedium, Category: models.CategoryOther, DueDate: &due})

	_, out, err := server.handleGetAlerts(context.Background(), nil, getAlertsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 1 || out.Alerts[0].Condition != "overdue_tasks" {
		t.Fatalf("expected an overdue alert, got %+v", out)
	}
}

func TestParseSince(t *testing.T) {
	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

	got, err := parseSince("7d", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("unexpected since: %v", got)
	}

	got, err = parseSince("24h", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now.Add(-24 * time.Hour)) {
		t.Fatalf("unexpected since: %v", got)
	}

	if _, err := parseSince("soon", now); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
