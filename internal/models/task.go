// internal/models/task.go
package models

// TaskType determines which recurrence rule applies to a task.
type TaskType string

const (
	TypeDaily     TaskType = "daily"
	TypeScheduled TaskType = "scheduled"
	TypeBacklog   TaskType = "backlog"
)

// DateRange is an inclusive [Start, End] window in epoch milliseconds.
type DateRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Task represents the structure of a task in the system.
// All date fields are epoch milliseconds; the entries of DailyDoneDates and
// PlannedDates are day-start values (00:00:00 of some calendar day).
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        TaskType `json:"type"`
	CreatedAt   int64    `json:"created_at"`
	Archived    bool     `json:"archived"`
	ArchivedAt  *int64   `json:"archived_at,omitempty"`

	// Completed is the sole completion signal for backlog tasks (shared by
	// every planned date); for scheduled tasks it exists alongside
	// DailyDoneDates and both are cleared by the daily reset.
	Completed bool `json:"completed"`

	// DailyDoneDates marks the days a daily/scheduled task's obligation was
	// fulfilled. Logically a set: no duplicates. Never consulted for backlog.
	DailyDoneDates []int64 `json:"daily_done_dates"`

	// Scheduled recurrence: weekdays (0=Sunday) and/or inclusive date ranges.
	DaysOfWeek []int64     `json:"days_of_week,omitempty"`
	DateRanges []DateRange `json:"date_ranges,omitempty"`

	// PlannedDates holds the specific days a backlog task is slated for.
	// Legacy rows stored second-epochs here; values below 1e12 are seconds.
	PlannedDates []int64 `json:"planned_dates,omitempty"`
}

// Clone returns a deep copy; slice fields are never shared with the receiver.
func (t Task) Clone() Task {
	out := t
	if t.ArchivedAt != nil {
		v := *t.ArchivedAt
		out.ArchivedAt = &v
	}
	out.DailyDoneDates = append([]int64(nil), t.DailyDoneDates...)
	out.DaysOfWeek = append([]int64(nil), t.DaysOfWeek...)
	out.DateRanges = append([]DateRange(nil), t.DateRanges...)
	out.PlannedDates = append([]int64(nil), t.PlannedDates...)
	return out
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	Type            *TaskType
	Completed       *bool
	IncludeArchived bool
}
