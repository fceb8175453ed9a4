package recurrence

import (
	"sort"
	"strings"
	"time"

	"focusboard/internal/models"
)

// SortKey is the closed set of task-list orderings. Unknown strings are
// rejected at parse time rather than silently falling back.
type SortKey string

const (
	SortCreated      SortKey = "created"
	SortTitle        SortKey = "title"
	SortType         SortKey = "type"
	SortDueFirst     SortKey = "due_first"
	SortOverdueFirst SortKey = "overdue_first"
)

// lessFunc orders two tasks relative to a reference day-start (ignored by
// keys that don't need one).
type lessFunc func(a, b models.Task, refDay int64) bool

var comparators = map[SortKey]lessFunc{
	SortCreated: func(a, b models.Task, _ int64) bool {
		return a.CreatedAt > b.CreatedAt // newest first
	},
	SortTitle: func(a, b models.Task, _ int64) bool {
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	},
	SortType: func(a, b models.Task, _ int64) bool {
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.CreatedAt > b.CreatedAt
	},
	SortDueFirst: func(a, b models.Task, refDay int64) bool {
		ad := isDueOnDay(a, refDay)
		bd := isDueOnDay(b, refDay)
		if ad != bd {
			return ad
		}
		return a.CreatedAt > b.CreatedAt
	},
	SortOverdueFirst: func(a, b models.Task, refDay int64) bool {
		ao := IsOverdue(a, refDay)
		bo := IsOverdue(b, refDay)
		if ao != bo {
			return ao
		}
		return a.CreatedAt > b.CreatedAt
	},
}

// ParseSortKey maps a request parameter onto the sort-key enum.
func ParseSortKey(s string) (SortKey, bool) {
	key := SortKey(s)
	_, ok := comparators[key]
	return key, ok
}

// SortTasks returns a sorted copy; the input order is preserved. The sort is
// stable so equal elements keep their relative store order.
func SortTasks(tasks []models.Task, key SortKey, refDay int64) []models.Task {
	less, ok := comparators[key]
	if !ok {
		less = comparators[SortCreated]
	}
	out := append([]models.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j], refDay)
	})
	return out
}

// FilterDueOn keeps the tasks occurring on date's calendar day.
func FilterDueOn(tasks []models.Task, date time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if IsDueOn(t, date) {
			out = append(out, t)
		}
	}
	return out
}

// FilterOverdue keeps the tasks whose window elapsed before refDay without
// completion.
func FilterOverdue(tasks []models.Task, refDay int64) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if IsOverdue(t, refDay) {
			out = append(out, t)
		}
	}
	return out
}
