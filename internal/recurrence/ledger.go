package recurrence

import "focusboard/internal/models"

// IsDoneForDay reports whether the task's obligation for the day starting at
// dayStart is fulfilled. Backlog tasks carry a single day-independent flag
// shared by every planned date; completing one occurrence completes all of
// them. Recurring types record completion per day.
func IsDoneForDay(task models.Task, dayStart int64) bool {
	if task.Type == models.TypeBacklog {
		return task.Completed
	}
	for _, done := range task.DailyDoneDates {
		if done == dayStart {
			return true
		}
	}
	return false
}

// ToggleDoneForDay flips the task's completion state for the given day and
// returns the updated copy; the input is never mutated and persistence is
// the caller's concern. For recurring types the day-start set stays
// duplicate-free: removing an absent value is a no-op, inserting an existing
// one changes nothing.
func ToggleDoneForDay(task models.Task, dayStart int64) models.Task {
	out := task.Clone()
	if task.Type == models.TypeBacklog {
		out.Completed = !out.Completed
		return out
	}

	kept := out.DailyDoneDates[:0]
	removed := false
	for _, done := range out.DailyDoneDates {
		if done == dayStart {
			removed = true
			continue
		}
		kept = append(kept, done)
	}
	if removed {
		out.DailyDoneDates = kept
		return out
	}
	out.DailyDoneDates = append(kept, dayStart)
	return out
}

// RemoveDoneDates strips every timestamp in stale from the task's done set,
// returning the remaining entries and whether anything was removed. Shared
// by the ledger and the daily reset job.
func RemoveDoneDates(done []int64, stale []int64) ([]int64, bool) {
	kept := make([]int64, 0, len(done))
	changed := false
	for _, d := range done {
		if containsInt64(stale, d) {
			changed = true
			continue
		}
		kept = append(kept, d)
	}
	return kept, changed
}

func containsInt64(set []int64, v int64) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
