package cli

import (
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

func TestDoneCmd_CompletesTask(t *testing.T) {
	store := withTestStore(t)
	task := mustAdd(t, store, core.TaskFields{Title: "A"})

	if err := doneCmd.RunE(doneCmd, []string{task.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := store.Get(task.ID)
	if !got.Completed {
		t.Error("task not completed")
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
}

func TestDoneCmd_ReopensTask(t *testing.T) {
	store := withTestStore(t)
	task := mustAdd(t, store, core.TaskFields{Title: "A"})

	if err := doneCmd.RunE(doneCmd, []string{task.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := doneCmd.RunE(doneCmd, []string{task.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := store.Get(task.ID)
	if got.Completed {
		t.Error("task should be reopened")
	}
}

func TestDoneCmd_RecurringSpawnsNext(t *testing.T) {
	store := withTestStore(t)
	due := timePtr(mustParseWhen(t, "2030-06-01"))
	task := mustAdd(t, store, core.TaskFields{
		Title:      "Water plants",
		DueDate:    due,
		Recurrence: models.RecurrenceDaily,
	})

	if err := doneCmd.RunE(doneCmd, []string{task.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.All()) != 2 {
		t.Fatalf("expected next occurrence to spawn, got %d tasks", len(store.All()))
	}
}

func TestDoneCmd_UnknownID(t *testing.T) {
	withTestStore(t)

	if err := doneCmd.RunE(doneCmd, []string{"missing"}); err == nil {
		t.Fatal("expected error for unknown ID")
	}
}

func mustParseWhen(t *testing.T, s string) (tm time.Time) {
	t.Helper()
	tm, err := parseWhen(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tm
}
