package models

// FilterType selects which slice of the task list a view shows.
type FilterType string

const (
	FilterAll       FilterType = "all"
	FilterActive    FilterType = "active"
	FilterCompleted FilterType = "completed"
	FilterToday     FilterType = "today"
	FilterUpcoming  FilterType = "upcoming"
)

// Valid reports whether f is one of the known filter types.
func (f FilterType) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted, FilterToday, FilterUpcoming:
		return true
	}
	return false
}

// FilterAny is the wildcard value for the priority and category criteria.
const FilterAny = "all"

// TaskFilters is the selection criteria for a derived task view.
// All criteria use AND logic: a task must match every one to be kept.
type TaskFilters struct {
	Type        FilterType `json:"type"`
	Priority    string     `json:"priority"` // a Priority value or FilterAny
	Category    string     `json:"category"` // a Category value or FilterAny
	SearchQuery string     `json:"search_query"`
}

// DefaultFilters returns the neutral criteria that keep every task.
func DefaultFilters() TaskFilters {
	return TaskFilters{
		Type:     FilterAll,
		Priority: FilterAny,
		Category: FilterAny,
	}
}
