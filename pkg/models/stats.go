package models

// Stats holds aggregate counts computed over the full canonical task list,
// never over a filtered view.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	HighPriority   int `json:"high_priority"`   // pending only
	MediumPriority int `json:"medium_priority"` // pending only
	LowPriority    int `json:"low_priority"`    // pending only
	Overdue        int `json:"overdue"`
	DueToday       int `json:"due_today"`
	Recurring      int `json:"recurring"`
	CompletionRate int `json:"completion_rate"` // rounded percentage, 0 when Total is 0
}
