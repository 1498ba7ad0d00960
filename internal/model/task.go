package model

// FilterAll is the filter value that matches every task.
const FilterAll = "All"

// Task is the domain model for a board entry.
// An empty Category means uncategorized.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

// Matches reports whether the task is visible under filter.
func (t Task) Matches(filter string) bool {
	return filter == FilterAll || t.Category == filter
}

// ToggleLabel is the action label shown next to the task.
func (t Task) ToggleLabel() string {
	if t.Completed {
		return "Undo"
	}
	return "Complete"
}
