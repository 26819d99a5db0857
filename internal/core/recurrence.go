package core

import (
	"time"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// NextOccurrence computes the follow-up occurrence of a completed recurring
// task. It returns nil when the task does not recur or has no due date.
//
// The new due date advances by one recurrence period. AddDate handles the
// calendar math, so monthly recurrence from Jan 31 rolls over the way the Go
// runtime normalizes month ends. When the source task has a reminder, the
// offset between reminder and due date is preserved on the new occurrence.
//
// id becomes the new task's ID and now its creation time; passing both in
// keeps the function pure.
func NextOccurrence(task models.Task, id string, now time.Time) *models.Task {
	if task.Recurrence == models.RecurrenceNone || task.DueDate == nil {
		return nil
	}

	due := *task.DueDate
	var newDue time.Time
	switch task.Recurrence {
	case models.RecurrenceDaily:
		newDue = due.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		newDue = due.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		newDue = due.AddDate(0, 1, 0)
	default:
		return nil
	}

	next := task.Clone()
	next.ID = id
	next.Completed = false
	next.CompletedAt = nil
	next.CreatedAt = now
	next.LastNotified = nil
	next.DueDate = &newDue

	if task.ReminderTime != nil {
		offset := due.Sub(*task.ReminderTime)
		newReminder := newDue.Add(-offset)
		next.ReminderTime = &newReminder
	}

	return &next
}
