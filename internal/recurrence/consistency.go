package recurrence

import (
	"time"

	"focusboard/internal/models"
)

// DayStat is one day of the consistency window: how many recurring tasks
// were expected versus completed on it.
type DayStat struct {
	Day       int64   `json:"day"` // UTC day-start, epoch ms
	Expected  int     `json:"expected"`
	Completed int     `json:"completed"`
	Ratio     float64 `json:"ratio"`
	Level     int     `json:"level"`
}

// ConsistencyReport covers a trailing window of days, oldest first.
type ConsistencyReport struct {
	Days         []DayStat `json:"days"`
	OverallRatio float64   `json:"overall_ratio"`
}

// BuildConsistency walks the trailing windowDays window ending on now's UTC
// date and counts, per day, expected versus completed recurring tasks. A
// daily task is expected on every day between its creation and archive
// bounds; a scheduled task on the days matching its weekday set. Days on
// which nothing was expected carry a zero ratio and are excluded from the
// overall ratio's denominator, which keeps an empty Tuesday distinct from a
// Tuesday where every task was skipped.
func BuildConsistency(tasks []models.Task, windowDays int, now time.Time) ConsistencyReport {
	if windowDays < 1 {
		windowDays = 1
	}

	report := ConsistencyReport{Days: make([]DayStat, 0, windowDays)}
	today := time.UnixMilli(DayStartUTC(now)).UTC()

	ratioSum := 0.0
	activeDays := 0

	for i := windowDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		day := date.UnixMilli()

		stat := DayStat{Day: day}
		for _, task := range tasks {
			if !expectedOn(task, date, day) {
				continue
			}
			stat.Expected++
			if containsInt64(task.DailyDoneDates, day) {
				stat.Completed++
			}
		}

		if stat.Expected > 0 {
			stat.Ratio = float64(stat.Completed) / float64(stat.Expected)
			ratioSum += stat.Ratio
			activeDays++
		}
		stat.Level = Level(stat.Ratio)
		report.Days = append(report.Days, stat)
	}

	if activeDays > 0 {
		report.OverallRatio = ratioSum / float64(activeDays)
	}
	return report
}

func expectedOn(task models.Task, date time.Time, day int64) bool {
	if task.CreatedAt > 0 && day < DayStartOfMillis(task.CreatedAt) {
		return false
	}
	if task.Archived {
		if task.ArchivedAt == nil || day >= DayStartOfMillis(*task.ArchivedAt) {
			return false
		}
	}

	switch task.Type {
	case models.TypeDaily:
		return true
	case models.TypeScheduled:
		weekday := int64(date.Weekday())
		for _, dow := range task.DaysOfWeek {
			if dow == weekday {
				return true
			}
		}
	}
	return false
}

// Level buckets a day ratio into a discrete heatmap intensity, monotonic in
// the ratio: 0 for nothing done, 4 for everything done.
func Level(ratio float64) int {
	switch {
	case ratio <= 0:
		return 0
	case ratio < 0.4:
		return 1
	case ratio < 0.7:
		return 2
	case ratio < 1:
		return 3
	default:
		return 4
	}
}
