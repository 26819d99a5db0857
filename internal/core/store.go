// Package core contains the task state engine: the canonical task store,
// recurrence expansion, undo/redo history, derived filtering and statistics,
// and the reminder scheduler.
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// Slot is the subset of storage.SlotManager the store needs. Defining it
// here keeps core independent of the storage package.
type Slot interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
}

// EventLogger records engine events. Implementations must not block the
// caller on delivery.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// TaskFields carries the caller-supplied fields for a new task. The store
// fills in everything else: ID, creation time, completion state.
type TaskFields struct {
	Title        string
	Description  string
	DueDate      *time.Time
	ReminderTime *time.Time
	Priority     models.Priority
	Category     models.Category
	Tags         []string
	Recurrence   models.Recurrence
}

// TaskStore owns the canonical task list. Every mutation produces a fresh
// list value, persists it to the slot, and (except MarkNotified) records a
// history snapshot, in that order. All other components see copies only.
//
// The store is not safe for concurrent use; the application runs mutations
// on a single logical thread.
type TaskStore struct {
	slot    Slot
	history *History
	events  EventLogger // may be nil

	tasks []models.Task

	now   func() time.Time
	newID func() string
}

// NewTaskStore creates a store over the given persistence slot and history
// log. events may be nil to disable event logging.
func NewTaskStore(slot Slot, history *History, events EventLogger) *TaskStore {
	return &TaskStore{
		slot:    slot,
		history: history,
		events:  events,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Load initializes the canonical list from the persistence slot. A corrupt
// slot is recovered by starting empty; the failure is logged as an event,
// not surfaced as an error.
func (s *TaskStore) Load() error {
	tasks, err := s.slot.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrCorruptSlot) {
			return fmt.Errorf("loading task store: %w", err)
		}
		s.logEvent("store.load_error", map[string]any{"error": err.Error()})
		tasks = nil
	}
	s.tasks = tasks
	// Seed an empty history with the loaded state so the very first
	// mutation can be undone back to it.
	if s.history.Len() == 0 {
		s.history.Record(tasks)
	}
	return nil
}

// All returns a deep copy of the canonical list.
func (s *TaskStore) All() []models.Task {
	return cloneTasks(s.tasks)
}

// Get returns a copy of the task with the given ID.
func (s *TaskStore) Get(id string) (models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return models.Task{}, false
}

// Add constructs a task from the given fields, appends it to the canonical
// list, persists, and snapshots. The created task is returned.
func (s *TaskStore) Add(fields TaskFields) (models.Task, error) {
	task := models.Task{
		ID:           s.newID(),
		Title:        fields.Title,
		Description:  fields.Description,
		DueDate:      fields.DueDate,
		ReminderTime: fields.ReminderTime,
		Priority:     fields.Priority,
		Category:     fields.Category,
		Tags:         dedupeTags(fields.Tags),
		Completed:    false,
		CreatedAt:    s.now(),
		Recurrence:   fields.Recurrence,
	}
	if task.Recurrence == "" {
		task.Recurrence = models.RecurrenceNone
	}

	next := append(cloneTasks(s.tasks), task.Clone())
	if err := s.commit(next); err != nil {
		return models.Task{}, fmt.Errorf("adding task: %w", err)
	}
	s.logEvent("task.created", map[string]any{"task_id": task.ID, "title": task.Title})
	return task, nil
}

// Update replaces the task with the given ID by a copy passed through
// apply. Tags are deduplicated afterwards, as in Add. The store does not
// reconcile Completed and CompletedAt; apply must leave them consistent. An
// unknown ID leaves the list unchanged but still records a history snapshot.
func (s *TaskStore) Update(id string, apply func(*models.Task)) error {
	next := cloneTasks(s.tasks)
	for i := range next {
		if next[i].ID == id {
			apply(&next[i])
			next[i].ID = id // the ID is immutable
			next[i].Tags = dedupeTags(next[i].Tags)
			break
		}
	}
	if err := s.commit(next); err != nil {
		return fmt.Errorf("updating task %s: %w", id, err)
	}
	s.logEvent("task.updated", map[string]any{"task_id": id})
	return nil
}

// Delete removes the task with the given ID. An unknown ID leaves the list
// unchanged but still records a history snapshot.
func (s *TaskStore) Delete(id string) error {
	next := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t.Clone())
		}
	}
	if err := s.commit(next); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	s.logEvent("task.deleted", map[string]any{"task_id": id})
	return nil
}

// ToggleComplete flips the completion state of the task with the given ID,
// maintaining the CompletedAt invariant. Completing a recurring task with a
// due date appends its next occurrence in the same mutation. An unknown ID
// is a no-op with no history snapshot.
func (s *TaskStore) ToggleComplete(id string) error {
	source, ok := s.Get(id)
	if !ok {
		return nil
	}

	now := s.now()
	next := cloneTasks(s.tasks)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		next[i].Completed = !next[i].Completed
		if next[i].Completed {
			completedAt := now
			next[i].CompletedAt = &completedAt
		} else {
			next[i].CompletedAt = nil
		}
		break
	}

	event := "task.reopened"
	var occurrence *models.Task
	if !source.Completed {
		event = "task.completed"
		if occurrence = NextOccurrence(source, s.newID(), now); occurrence != nil {
			next = append(next, *occurrence)
		}
	}

	if err := s.commit(next); err != nil {
		return fmt.Errorf("toggling task %s: %w", id, err)
	}
	s.logEvent(event, map[string]any{"task_id": id})
	if occurrence != nil {
		s.logEvent("task.recurred", map[string]any{
			"task_id": source.ID, "next_id": occurrence.ID,
		})
	}
	return nil
}

// MarkNotified sets LastNotified on the task with the given ID and persists
// the change. It is side-channel bookkeeping for the reminder scheduler and
// deliberately records no history snapshot. An unknown ID is a no-op.
func (s *TaskStore) MarkNotified(id string) error {
	found := false
	next := cloneTasks(s.tasks)
	for i := range next {
		if next[i].ID == id {
			notifiedAt := s.now()
			next[i].LastNotified = &notifiedAt
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := s.slot.Save(next); err != nil {
		return fmt.Errorf("marking task %s notified: %w", id, err)
	}
	s.tasks = next
	return nil
}

// Undo replaces the canonical list with the previous history snapshot and
// re-persists it, without recording a new history entry. It reports false
// when there is nothing to undo.
func (s *TaskStore) Undo() (bool, error) {
	snapshot, ok := s.history.Undo()
	if !ok {
		return false, nil
	}
	if err := s.slot.Save(snapshot); err != nil {
		return false, fmt.Errorf("undoing: %w", err)
	}
	s.tasks = snapshot
	s.logEvent("history.undo", nil)
	return true, nil
}

// Redo replaces the canonical list with the next history snapshot and
// re-persists it, without recording a new history entry. It reports false
// when there is nothing to redo.
func (s *TaskStore) Redo() (bool, error) {
	snapshot, ok := s.history.Redo()
	if !ok {
		return false, nil
	}
	if err := s.slot.Save(snapshot); err != nil {
		return false, fmt.Errorf("redoing: %w", err)
	}
	s.tasks = snapshot
	s.logEvent("history.redo", nil)
	return true, nil
}

// CanUndo reports whether an undo snapshot is available.
func (s *TaskStore) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo snapshot is available.
func (s *TaskStore) CanRedo() bool { return s.history.CanRedo() }

// commit persists the new canonical list, then snapshots it, then swaps it
// in. Failing the save leaves memory, disk, and history all at the prior
// state.
func (s *TaskStore) commit(next []models.Task) error {
	if err := s.slot.Save(next); err != nil {
		return err
	}
	s.history.Record(next)
	s.tasks = next
	return nil
}

func (s *TaskStore) logEvent(eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	_ = s.events.LogEvent(eventType, data)
}

// dedupeTags drops duplicate tags while preserving first-seen order.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
