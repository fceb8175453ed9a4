package recurrence

import (
	"time"

	"focusboard/internal/models"
)

// IsDueOn reports whether the task occurs on date's calendar day. All civil
// day math here uses UTC day-starts; matching against legacy multi-base
// stored stamps is the normalizer's job, not this predicate's.
func IsDueOn(task models.Task, date time.Time) bool {
	day := DayStartUTC(date)
	return isDueOnDay(task, day)
}

func isDueOnDay(task models.Task, day int64) bool {
	if task.Archived {
		// No occurrences at or after the archive day-start. A missing
		// ArchivedAt on an archived row gives no lower bound, so the task
		// is treated as due on no day at all.
		if task.ArchivedAt == nil || day >= DayStartOfMillis(*task.ArchivedAt) {
			return false
		}
	}
	if task.CreatedAt > 0 && day < DayStartOfMillis(task.CreatedAt) {
		return false
	}

	switch task.Type {
	case models.TypeDaily:
		return true
	case models.TypeScheduled:
		return scheduledDueOn(task, day)
	case models.TypeBacklog:
		return backlogDueOn(task, day)
	}
	return false
}

func scheduledDueOn(task models.Task, day int64) bool {
	weekday := int64(time.UnixMilli(day).UTC().Weekday())
	for _, dow := range task.DaysOfWeek {
		if dow == weekday {
			return true
		}
	}
	for _, r := range task.DateRanges {
		start, end := NormalizeMillis(r.Start), NormalizeMillis(r.End)
		if start <= 0 || end <= 0 || end < start {
			continue
		}
		// Ranges are inclusive at both ends, compared on day-starts.
		if DayStartOfMillis(start) <= day && day <= DayStartOfMillis(end) {
			return true
		}
	}
	return false
}

func backlogDueOn(task models.Task, day int64) bool {
	for _, planned := range task.PlannedDates {
		ms := NormalizeMillis(planned)
		if ms <= 0 {
			continue
		}
		if DayStartOfMillis(ms) == day {
			return true
		}
	}
	return false
}

// IsOverdue reports whether the task's whole window has elapsed without
// completion: every relevant date (a range end for scheduled, a planned day
// for backlog) lies strictly before refDayStart. Daily tasks recur
// indefinitely and are never overdue, as is a scheduled task with a
// non-empty weekday set.
func IsOverdue(task models.Task, refDayStart int64) bool {
	if task.Archived || task.Completed {
		return false
	}

	switch task.Type {
	case models.TypeScheduled:
		if len(task.DaysOfWeek) > 0 {
			return false
		}
		return datesElapsed(rangeEnds(task.DateRanges), refDayStart)
	case models.TypeBacklog:
		return datesElapsed(task.PlannedDates, refDayStart)
	}
	return false
}

func rangeEnds(ranges []models.DateRange) []int64 {
	ends := make([]int64, 0, len(ranges))
	for _, r := range ranges {
		ends = append(ends, r.End)
	}
	return ends
}

// datesElapsed is true when at least one usable date precedes ref and none
// lands on or after it. Malformed entries are skipped, not errors.
func datesElapsed(dates []int64, ref int64) bool {
	sawEarlier := false
	for _, raw := range dates {
		ms := NormalizeMillis(raw)
		if ms <= 0 {
			continue
		}
		if DayStartOfMillis(ms) >= ref {
			return false
		}
		sawEarlier = true
	}
	return sawEarlier
}
