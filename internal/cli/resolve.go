package cli

import (
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// resolveTaskID resolves a full ID or a unique ID prefix to a task. Prefix
// matching keeps commands usable without pasting whole UUIDs.
func resolveTaskID(ref string) (models.Task, error) {
	if Store == nil {
		return models.Task{}, fmt.Errorf("task store not initialized")
	}
	if ref == "" {
		return models.Task{}, fmt.Errorf("task ID is required")
	}

	if task, ok := Store.Get(ref); ok {
		return task, nil
	}

	var matches []models.Task
	for _, task := range Store.All() {
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = shortID(m.ID)
		}
		return models.Task{}, fmt.Errorf("ambiguous task ID %q matches %s", ref, strings.Join(ids, ", "))
	}
}

// shortID truncates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
