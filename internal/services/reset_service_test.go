package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusboard/internal/models"
	"focusboard/internal/recurrence"
)

func day(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func TestResetRun_ClearsDailyAndScheduled(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	now := time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)
	today := recurrence.DayStartUTC(now)
	yesterday := day(2024, time.June, 4)

	daily := repo.put(models.Task{
		Type:           models.TypeDaily,
		CreatedAt:      day(2024, time.June, 1),
		DailyDoneDates: []int64{yesterday, today},
	})
	scheduled := repo.put(models.Task{
		Type:           models.TypeScheduled,
		CreatedAt:      day(2024, time.June, 1),
		DaysOfWeek:     []int64{3},
		Completed:      true,
		DailyDoneDates: []int64{today},
	})
	untouched := repo.put(models.Task{
		Type:           models.TypeDaily,
		CreatedAt:      day(2024, time.June, 1),
		DailyDoneDates: []int64{yesterday},
	})

	svc := NewResetService(repo)
	result, err := svc.Run(context.Background(), now, "UTC")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.DailyUpdated != 1 || result.ScheduledUpdated != 1 {
		t.Fatalf("counts daily=%d scheduled=%d, want 1/1", result.DailyUpdated, result.ScheduledUpdated)
	}
	if result.Timezone != "UTC" || len(result.SearchedTimestamps) == 0 {
		t.Fatalf("unexpected result metadata: %+v", result)
	}

	got, _ := repo.get(daily.ID)
	if len(got.DailyDoneDates) != 1 || got.DailyDoneDates[0] != yesterday {
		t.Fatalf("daily task: today marker must go, yesterday must stay: %v", got.DailyDoneDates)
	}
	got, _ = repo.get(scheduled.ID)
	if got.Completed || len(got.DailyDoneDates) != 0 {
		t.Fatalf("scheduled task not fully reset: completed=%v dates=%v", got.Completed, got.DailyDoneDates)
	}
	got, _ = repo.get(untouched.ID)
	if len(got.DailyDoneDates) != 1 {
		t.Fatalf("task with no today marker must be untouched: %v", got.DailyDoneDates)
	}
}

func TestResetRun_Idempotent(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	now := time.Date(2024, 6, 5, 23, 0, 0, 0, time.UTC)
	today := recurrence.DayStartUTC(now)

	repo.put(models.Task{Type: models.TypeDaily, CreatedAt: day(2024, time.June, 1), DailyDoneDates: []int64{today}})
	repo.put(models.Task{Type: models.TypeScheduled, CreatedAt: day(2024, time.June, 1), Completed: true})

	svc := NewResetService(repo)
	first, err := svc.Run(context.Background(), now, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.DailyUpdated != 1 || first.ScheduledUpdated != 1 {
		t.Fatalf("first run counts %d/%d, want 1/1", first.DailyUpdated, first.ScheduledUpdated)
	}

	second, err := svc.Run(context.Background(), now, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.DailyUpdated != 0 || second.ScheduledUpdated != 0 {
		t.Fatalf("second run must be a no-op, got %d/%d", second.DailyUpdated, second.ScheduledUpdated)
	}
}

func TestResetRun_InvalidTimezoneAbortsBeforeFetch(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	repo.put(models.Task{Type: models.TypeDaily, CreatedAt: day(2024, time.June, 1)})

	svc := NewResetService(repo)
	_, err := svc.Run(context.Background(), time.Now(), "Mars/OlympusMons")
	if !errors.Is(err, recurrence.ErrInvalidTimezone) {
		t.Fatalf("expected ErrInvalidTimezone, got %v", err)
	}
	if repo.fetchCalls != 0 {
		t.Fatalf("no data may be touched on a bad timezone; fetches=%d", repo.fetchCalls)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("no mutation may happen on a bad timezone; updates=%d", repo.updateCalls)
	}
}

func TestResetRun_FetchFailureIsFatal(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	repo.fetchErr = errors.New("connection refused")

	svc := NewResetService(repo)
	_, err := svc.Run(context.Background(), time.Now(), "UTC")
	if !errors.Is(err, ErrDatastoreUnavailable) {
		t.Fatalf("expected ErrDatastoreUnavailable, got %v", err)
	}
}

func TestResetRun_PerRowFailureSkipsAndContinues(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	now := time.Date(2024, 6, 5, 6, 0, 0, 0, time.UTC)
	today := recurrence.DayStartUTC(now)

	broken := repo.put(models.Task{Type: models.TypeDaily, CreatedAt: day(2024, time.June, 1), DailyDoneDates: []int64{today}})
	healthy := repo.put(models.Task{Type: models.TypeDaily, CreatedAt: day(2024, time.June, 1), DailyDoneDates: []int64{today}})
	repo.failUpdateIDs[broken.ID] = errRowBroken

	svc := NewResetService(repo)
	result, err := svc.Run(context.Background(), now, "UTC")
	if err != nil {
		t.Fatalf("per-row failure must not fail the batch: %v", err)
	}
	// The broken row is excluded from the success counter.
	if result.DailyUpdated != 1 {
		t.Fatalf("dailyUpdated=%d, want 1", result.DailyUpdated)
	}

	got, _ := repo.get(healthy.ID)
	if len(got.DailyDoneDates) != 0 {
		t.Fatalf("healthy row must still be reset: %v", got.DailyDoneDates)
	}
	got, _ = repo.get(broken.ID)
	if len(got.DailyDoneDates) != 1 {
		t.Fatalf("broken row must keep its state: %v", got.DailyDoneDates)
	}
}

func TestResetRun_ArchivedTasksExcluded(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	today := recurrence.DayStartUTC(now)
	archivedAt := day(2024, time.June, 3)

	archived := repo.put(models.Task{
		Type:           models.TypeDaily,
		CreatedAt:      day(2024, time.June, 1),
		Archived:       true,
		ArchivedAt:     &archivedAt,
		DailyDoneDates: []int64{today},
	})

	svc := NewResetService(repo)
	result, err := svc.Run(context.Background(), now, "UTC")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.DailyUpdated != 0 {
		t.Fatalf("archived tasks must not be reset, dailyUpdated=%d", result.DailyUpdated)
	}
	got, _ := repo.get(archived.ID)
	if len(got.DailyDoneDates) != 1 {
		t.Fatalf("archived task state must be preserved: %v", got.DailyDoneDates)
	}
}
