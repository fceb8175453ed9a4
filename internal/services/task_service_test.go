package services

import (
	"context"
	"testing"
	"time"

	"focusboard/internal/models"
	"focusboard/internal/recurrence"
)

// Full day-5 lifecycle of a daily task: due, marked done, reset at rollover.
func TestDailyTaskLifecycleAcrossReset(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	tasks := NewTaskService(repo)
	reset := NewResetService(repo)
	ctx := context.Background()

	day0 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	day5 := day0.AddDate(0, 0, 5)
	day5Ts := recurrence.DayStartUTC(day5)

	created, err := tasks.Create(ctx, &models.Task{Title: "stretch", Type: models.TypeDaily, CreatedAt: day0.UnixMilli()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := tasks.ToggleDone(ctx, created.ID, day5Ts)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !recurrence.IsDueOn(*toggled, day5) {
		t.Fatal("daily task must be due on day 5")
	}
	if !recurrence.IsDoneForDay(*toggled, day5Ts) {
		t.Fatal("task must read done after toggle")
	}

	if _, err := reset.Run(ctx, day5, "UTC"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	after, err := tasks.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(after.DailyDoneDates) != 0 {
		t.Fatalf("reset must clear the day-5 marker: %v", after.DailyDoneDates)
	}
	if recurrence.IsDoneForDay(*after, day5Ts) {
		t.Fatal("task must read not-done after reset")
	}
}

// A backlog task's single completed flag covers every planned occurrence.
func TestBacklogSharedCompletion(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	tasks := NewTaskService(repo)
	ctx := context.Background()

	day10 := day(2024, time.June, 10)
	day20 := day(2024, time.June, 20)
	created, err := tasks.Create(ctx, &models.Task{
		Title:        "file taxes",
		Type:         models.TypeBacklog,
		CreatedAt:    day(2024, time.June, 1),
		PlannedDates: []int64{day10, day20},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !recurrence.IsDueOn(*created, time.UnixMilli(day10).UTC()) {
		t.Fatal("backlog task must be due on a planned day")
	}
	if recurrence.IsDueOn(*created, time.UnixMilli(day(2024, time.June, 15)).UTC()) {
		t.Fatal("backlog task must not be due off-plan")
	}

	done, err := tasks.ToggleDone(ctx, created.ID, day10)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !recurrence.IsDoneForDay(*done, day10) || !recurrence.IsDoneForDay(*done, day20) {
		t.Fatal("completing one occurrence must complete all planned dates")
	}
}

func TestTaskServiceCreate_RejectsUnknownType(t *testing.T) {
	t.Parallel()

	tasks := NewTaskService(newFakeTaskRepo())
	_, err := tasks.Create(context.Background(), &models.Task{Title: "x", Type: "weekly"})
	if err != ErrInvalidTaskType {
		t.Fatalf("expected ErrInvalidTaskType, got %v", err)
	}
}

func TestListView_TodayAndOverdue(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	tasks := NewTaskService(repo)
	ctx := context.Background()
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

	repo.put(models.Task{ID: 1, Title: "daily", Type: models.TypeDaily, CreatedAt: day(2024, time.June, 1)})
	repo.put(models.Task{ID: 2, Title: "stale", Type: models.TypeBacklog, CreatedAt: day(2024, time.June, 1),
		PlannedDates: []int64{day(2024, time.June, 3)}})

	today, err := tasks.ListView(ctx, models.TaskFilter{}, ViewToday, recurrence.SortCreated, now)
	if err != nil {
		t.Fatalf("today view: %v", err)
	}
	if len(today) != 1 || today[0].ID != 1 {
		t.Fatalf("unexpected today view: %v", today)
	}

	overdue, err := tasks.ListView(ctx, models.TaskFilter{}, ViewOverdue, recurrence.SortCreated, now)
	if err != nil {
		t.Fatalf("overdue view: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != 2 {
		t.Fatalf("unexpected overdue view: %v", overdue)
	}
}

func TestArchiveThenNeverDue(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	tasks := NewTaskService(repo)
	ctx := context.Background()
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

	created, err := tasks.Create(ctx, &models.Task{Title: "old habit", Type: models.TypeDaily, CreatedAt: day(2024, time.June, 1)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := tasks.Archive(ctx, created.ID, now); err != nil {
		t.Fatalf("archive: %v", err)
	}

	got, err := tasks.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if recurrence.IsDueOn(*got, now) || recurrence.IsDueOn(*got, now.AddDate(0, 0, 7)) {
		t.Fatal("archived task must not be due on or after its archive day")
	}
	if !recurrence.IsDueOn(*got, now.AddDate(0, 0, -1)) {
		t.Fatal("archived task must remain due for days before the archive boundary")
	}
}
