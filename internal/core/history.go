package core

import "github.com/taskdeck/taskdeck/pkg/models"

// HistorySlot persists the snapshot log so undo works across processes,
// not just within one session. Implemented by storage.HistoryManager.
type HistorySlot interface {
	Load() (snapshots [][]models.Task, index int, err error)
	Save(snapshots [][]models.Task, index int) error
}

// History is a linear undo/redo log of task-list snapshots. It holds an
// ordered sequence of snapshots and an index pointing at the current one.
// Recording while the index sits before the end discards the redo branch.
type History struct {
	snapshots [][]models.Task
	index     int
	limit     int
	slot      HistorySlot // may be nil
}

// NewHistory creates an empty history. limit caps the number of retained
// snapshots; 0 means unlimited. The index starts at -1 (nothing recorded).
func NewHistory(limit int) *History {
	return &History{index: -1, limit: limit}
}

// NewPersistentHistory creates a history that writes its snapshot log to
// slot after every change. Call Load to restore a prior process's log.
func NewPersistentHistory(limit int, slot HistorySlot) *History {
	return &History{index: -1, limit: limit, slot: slot}
}

// Load restores the snapshot log from the slot. A corrupt slot leaves the
// history empty and returns the error so the caller can log and continue.
// A nil slot is a no-op.
func (h *History) Load() error {
	if h.slot == nil {
		return nil
	}
	snapshots, index, err := h.slot.Load()
	if err != nil {
		return err
	}
	h.snapshots = snapshots
	h.index = index
	return nil
}

// Record truncates any snapshots after the current index, appends a copy of
// the given snapshot, and advances the index to it.
func (h *History) Record(snapshot []models.Task) {
	h.snapshots = append(h.snapshots[:h.index+1], cloneTasks(snapshot))
	h.index = len(h.snapshots) - 1

	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		h.snapshots = append([][]models.Task(nil), h.snapshots[drop:]...)
		h.index -= drop
	}
	h.persist()
}

// Undo steps the index back one snapshot and returns a copy of it.
// It reports false when there is nothing to undo.
func (h *History) Undo() ([]models.Task, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.index--
	h.persist()
	return cloneTasks(h.snapshots[h.index]), true
}

// Redo steps the index forward one snapshot and returns a copy of it.
// It reports false when there is nothing to redo.
func (h *History) Redo() ([]models.Task, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.index++
	h.persist()
	return cloneTasks(h.snapshots[h.index]), true
}

// persist writes the log through the slot. Best-effort: a failed write
// costs undo depth in a later process, never canonical task data.
func (h *History) persist() {
	if h.slot == nil {
		return
	}
	_ = h.slot.Save(h.snapshots, h.index)
}

// CanUndo reports whether a prior snapshot exists.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool {
	return h.index >= 0 && h.index < len(h.snapshots)-1
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// cloneTasks deep-copies a task list so history entries and returned views
// never alias the canonical list.
func cloneTasks(tasks []models.Task) []models.Task {
	if tasks == nil {
		return nil
	}
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
