package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/pkg/models"
)

func sampleTask(id string) models.Task {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return models.Task{
		ID:         id,
		Title:      "Test task " + id,
		Priority:   models.PriorityMedium,
		Category:   models.CategoryWork,
		Tags:       []string{"test"},
		CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Recurrence: models.RecurrenceNone,
		DueDate:    &due,
	}
}

func TestLoad_MissingFile(t *testing.T) {
	mgr := NewSlotManager(t.TempDir())

	tasks, err := mgr.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(tasks))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	mgr := NewSlotManager(t.TempDir())
	tasks := []models.Task{sampleTask("a"), sampleTask("b")}

	if err := mgr.Save(tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mgr.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("task order not preserved: %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].DueDate == nil || !got[0].DueDate.Equal(*tasks[0].DueDate) {
		t.Fatalf("due date not preserved: %v", got[0].DueDate)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	mgr := NewSlotManager(dir)

	if err := os.WriteFile(filepath.Join(dir, "tasks.yaml"), []byte("{not: [valid"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := mgr.Load()
	if !errors.Is(err, ErrCorruptSlot) {
		t.Fatalf("expected ErrCorruptSlot, got %v", err)
	}
}

func TestSave_OverwritesWholeSlot(t *testing.T) {
	mgr := NewSlotManager(t.TempDir())

	if err := mgr.Save([]models.Task{sampleTask("a"), sampleTask("b")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Save([]models.Task{sampleTask("c")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mgr.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected single task c, got %+v", got)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	mgr := NewSlotManager(dir)

	if err := mgr.Save([]models.Task{sampleTask("a")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.yaml")); err != nil {
		t.Fatalf("slot file not created: %v", err)
	}
}
