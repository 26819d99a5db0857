package cli

import (
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// memSlot is an in-memory core.Slot for CLI tests.
type memSlot struct {
	tasks []models.Task
}

func (m *memSlot) Load() ([]models.Task, error)   { return m.tasks, nil }
func (m *memSlot) Save(tasks []models.Task) error { m.tasks = tasks; return nil }

// withTestStore swaps the package-level Store for a fresh in-memory one and
// restores the original when the test finishes.
func withTestStore(t *testing.T) *core.TaskStore {
	t.Helper()
	orig := Store
	origCfg := Cfg
	t.Cleanup(func() {
		Store = orig
		Cfg = origCfg
	})

	store := core.NewTaskStore(&memSlot{}, core.NewHistory(0), nil)
	if err := store.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Store = store
	Cfg = models.DefaultConfig()
	return store
}

func mustAdd(t *testing.T, store *core.TaskStore, fields core.TaskFields) models.Task {
	t.Helper()
	if fields.Priority == "" {
		fields.Priority = models.PriorityMedium
	}
	if fields.Category == "" {
		fields.Category = models.CategoryOther
	}
	task, err := store.Add(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return task
}

func timePtr(t time.Time) *time.Time { return &t }
