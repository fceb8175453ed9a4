// Package recurrence holds the pure temporal core of the dashboard: deciding
// whether a task occurs on a given calendar day, reading and toggling per-day
// completion, normalizing ambiguous day-start timestamps, and aggregating
// completion history. Nothing here performs I/O or reads an ambient clock;
// the current instant and timezone are always passed in.
package recurrence

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimezone marks a timezone identifier that cannot be resolved.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Historical writers stored planned/done dates in seconds rather than
// milliseconds. Anything below this magnitude is a second-epoch.
const secondsThreshold = int64(1e12)

// NormalizeMillis disambiguates a stored epoch by magnitude: values below
// 1e12 are seconds and are scaled up. Non-positive values are passed through
// for the caller to skip.
func NormalizeMillis(v int64) int64 {
	if v > 0 && v < secondsThreshold {
		return v * 1000
	}
	return v
}

// DayStartUTC returns the epoch-ms UTC midnight of t's UTC calendar date.
func DayStartUTC(t time.Time) int64 {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
}

// DayStartOfMillis returns the UTC day-start of an epoch-ms instant.
func DayStartOfMillis(ms int64) int64 {
	return DayStartUTC(time.UnixMilli(ms))
}

// CandidateDayStarts resolves the distinct day-start epoch-ms values that
// could represent "today" at the given instant. The task set historically
// mixed three conventions for what midnight means (UTC, a named civil zone,
// and the writing device's local zone), so day-boundary matching has to
// probe all of them instead of assuming one.
//
// The result always contains the UTC midnight of now's UTC date; the named
// zone's civil midnight and the process-local midnight are appended when
// distinct. Order is stable but carries no meaning: callers treat the slice
// as a set. An empty timezone means UTC.
func CandidateDayStarts(now time.Time, timezone string) ([]int64, error) {
	candidates := []int64{DayStartUTC(now)}

	if timezone != "" && timezone != "UTC" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
		}
		candidates = appendDistinct(candidates, midnightIn(now, loc))
	}

	candidates = appendDistinct(candidates, midnightIn(now, time.Local))
	return candidates, nil
}

// midnightIn is the epoch-ms of 00:00:00 on now's calendar date in loc,
// under whatever UTC offset (DST included) loc has on that date.
func midnightIn(now time.Time, loc *time.Location) int64 {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UnixMilli()
}

func appendDistinct(set []int64, v int64) []int64 {
	for _, existing := range set {
		if existing == v {
			return set
		}
	}
	return append(set, v)
}
