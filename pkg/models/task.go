package models

import "time"

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority: lower ranks sort first.
// Unknown values rank after low so malformed data never floats to the top.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Category represents the life area a task belongs to.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryShopping Category = "shopping"
	CategoryOther    Category = "other"
)

// Valid reports whether c is one of the known category values.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// Recurrence represents how often a task repeats after completion.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid reports whether r is one of the known recurrence values.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Task is one concrete occurrence of a (possibly recurring) task.
// Completing a recurring task spawns a new Task record with its own ID;
// the completed occurrence stays in the list.
type Task struct {
	ID           string     `yaml:"id" json:"id"`
	Title        string     `yaml:"title" json:"title"`
	Description  string     `yaml:"description,omitempty" json:"description,omitempty"`
	DueDate      *time.Time `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	ReminderTime *time.Time `yaml:"reminder_time,omitempty" json:"reminder_time,omitempty"`
	Priority     Priority   `yaml:"priority" json:"priority"`
	Category     Category   `yaml:"category" json:"category"`
	Tags         []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	Completed    bool       `yaml:"completed" json:"completed"`
	CreatedAt    time.Time  `yaml:"created_at" json:"created_at"`
	CompletedAt  *time.Time `yaml:"completed_at,omitempty" json:"completed_at,omitempty"`
	Recurrence   Recurrence `yaml:"recurrence" json:"recurrence"`
	LastNotified *time.Time `yaml:"last_notified,omitempty" json:"last_notified,omitempty"`
}

// Clone returns a deep copy of the task. The tags slice and every time
// pointer are duplicated, so mutating the copy never aliases the original.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = make([]string, len(t.Tags))
		copy(c.Tags, t.Tags)
	}
	c.DueDate = cloneTime(t.DueDate)
	c.ReminderTime = cloneTime(t.ReminderTime)
	c.CompletedAt = cloneTime(t.CompletedAt)
	c.LastNotified = cloneTime(t.LastNotified)
	return c
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
