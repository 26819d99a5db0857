package core

import (
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/pkg/models"
	"pgregory.net/rapid"
)

func priorityGenerator() *rapid.Generator[models.Priority] {
	return rapid.SampledFrom([]models.Priority{
		models.PriorityHigh, models.PriorityMedium, models.PriorityLow,
	})
}

func categoryGenerator() *rapid.Generator[models.Category] {
	return rapid.SampledFrom([]models.Category{
		models.CategoryWork, models.CategoryPersonal, models.CategoryHealth,
		models.CategoryShopping, models.CategoryOther,
	})
}

func fieldsGenerator() *rapid.Generator[TaskFields] {
	return rapid.Custom(func(t *rapid.T) TaskFields {
		return TaskFields{
			Title:    rapid.StringMatching(`[A-Za-z ]{1,30}`).Draw(t, "title"),
			Priority: priorityGenerator().Draw(t, "priority"),
			Category: categoryGenerator().Draw(t, "category"),
			Tags:     rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 0, 4).Draw(t, "tags"),
		}
	})
}

// Property: task IDs stay pairwise distinct across any sequence of adds,
// using the real UUID generator.
func TestProperty_AddYieldsDistinctIDs(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := NewTaskStore(&memSlot{}, NewHistory(0), nil)
		if err := store.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		n := rapid.IntRange(1, 30).Draw(rt, "n")
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			task, err := store.Add(fieldsGenerator().Draw(rt, "fields"))
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if seen[task.ID] {
				t.Fatalf("duplicate ID %q after %d adds", task.ID, i+1)
			}
			seen[task.ID] = true
		}
	})
}

// Property: after any sequence of adds, toggles, and deletes, every task
// satisfies completed == (completedAt != nil).
func TestProperty_CompletionInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store, _ := newPropertyStore(rt)

		ops := rapid.IntRange(1, 40).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			all := store.All()
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				if _, err := store.Add(fieldsGenerator().Draw(rt, "fields")); err != nil {
					t.Fatalf("Add failed: %v", err)
				}
			case 1:
				if len(all) > 0 {
					idx := rapid.IntRange(0, len(all)-1).Draw(rt, "toggleIdx")
					if err := store.ToggleComplete(all[idx].ID); err != nil {
						t.Fatalf("ToggleComplete failed: %v", err)
					}
				}
			case 2:
				if len(all) > 0 {
					idx := rapid.IntRange(0, len(all)-1).Draw(rt, "deleteIdx")
					if err := store.Delete(all[idx].ID); err != nil {
						t.Fatalf("Delete failed: %v", err)
					}
				}
			}
		}

		for _, task := range store.All() {
			if task.Completed != (task.CompletedAt != nil) {
				t.Fatalf("invariant violated: %+v", task)
			}
		}
	})
}

// Property: undoing then redoing restores the exact list the mutation
// produced, for any run of mutations.
func TestProperty_UndoRedoRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store, _ := newPropertyStore(rt)

		// At least two mutations so an undo is available.
		n := rapid.IntRange(2, 15).Draw(rt, "n")
		for i := 0; i < n; i++ {
			if _, err := store.Add(fieldsGenerator().Draw(rt, "fields")); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
		}

		before := store.All()
		if ok, err := store.Undo(); err != nil || !ok {
			t.Fatalf("Undo failed: ok=%v err=%v", ok, err)
		}
		if len(store.All()) != len(before)-1 {
			t.Fatalf("undo should drop the last add, got %d of %d", len(store.All()), len(before))
		}
		if ok, err := store.Redo(); err != nil || !ok {
			t.Fatalf("Redo failed: ok=%v err=%v", ok, err)
		}

		after := store.All()
		if len(after) != len(before) {
			t.Fatalf("round trip changed list length: %d vs %d", len(after), len(before))
		}
		for i := range before {
			if before[i].ID != after[i].ID {
				t.Fatalf("round trip changed list contents at %d: %q vs %q", i, before[i].ID, after[i].ID)
			}
		}
	})
}

// Property: filtering is a pure function of its inputs.
func TestProperty_FilterIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store, _ := newPropertyStore(rt)
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		for i := 0; i < n; i++ {
			if _, err := store.Add(fieldsGenerator().Draw(rt, "fields")); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
		}

		filters := models.TaskFilters{
			Type: rapid.SampledFrom([]models.FilterType{
				models.FilterAll, models.FilterActive, models.FilterCompleted,
				models.FilterToday, models.FilterUpcoming,
			}).Draw(rt, "type"),
			Priority:    rapid.SampledFrom([]string{models.FilterAny, "high", "medium", "low"}).Draw(rt, "priority"),
			Category:    rapid.SampledFrom([]string{models.FilterAny, "work", "personal"}).Draw(rt, "category"),
			SearchQuery: rapid.StringMatching(`[a-z]{0,5}`).Draw(rt, "query"),
		}

		now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
		first := ApplyFilters(store.All(), filters, now)
		second := ApplyFilters(store.All(), filters, now)
		if len(first) != len(second) {
			t.Fatalf("filter not idempotent: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Fatalf("filter not idempotent at %d", i)
			}
		}
	})
}

func newPropertyStore(rt *rapid.T) (*TaskStore, *memSlot) {
	slot := &memSlot{}
	store := NewTaskStore(slot, NewHistory(0), nil)
	if err := store.Load(); err != nil {
		rt.Fatalf("Load failed: %v", err)
	}
	return store, slot
}
