// internal/services/task_service.go
package services

import (
	"context"
	"time"

	"focusboard/internal/models"
	"focusboard/internal/recurrence"
	"focusboard/internal/repositories"
)

// TaskView selects a classifier-backed slice of the task list.
type TaskView string

const (
	ViewAll     TaskView = "all"
	ViewToday   TaskView = "today"
	ViewOverdue TaskView = "overdue"
	ViewDone    TaskView = "done"
)

func ParseTaskView(s string) (TaskView, bool) {
	switch v := TaskView(s); v {
	case ViewAll, ViewToday, ViewOverdue, ViewDone:
		return v, true
	}
	return "", false
}

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListView(ctx context.Context, filter models.TaskFilter, view TaskView, sort recurrence.SortKey, now time.Time) ([]models.Task, error)
	Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error)
	Archive(ctx context.Context, id int64, now time.Time) error
	// ToggleDone flips the task's completion for the day starting at
	// dayStart (epoch ms) and persists the result.
	ToggleDone(ctx context.Context, id int64, dayStart int64) (*models.Task, error)
}

type taskService struct {
	repo repositories.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func validTaskType(t models.TaskType) bool {
	switch t {
	case models.TypeDaily, models.TypeScheduled, models.TypeBacklog:
		return true
	}
	return false
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Type == "" {
		task.Type = models.TypeDaily
	}
	if !validTaskType(task.Type) {
		return nil, ErrInvalidTaskType
	}
	if task.CreatedAt == 0 {
		task.CreatedAt = time.Now().UnixMilli()
	}
	task.Completed = false
	task.DailyDoneDates = []int64{}

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) ListView(ctx context.Context, filter models.TaskFilter, view TaskView, sort recurrence.SortKey, now time.Time) ([]models.Task, error) {
	tasks, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	today := recurrence.DayStartUTC(now)
	switch view {
	case ViewToday:
		tasks = recurrence.FilterDueOn(tasks, now)
	case ViewOverdue:
		tasks = recurrence.FilterOverdue(tasks, today)
	case ViewDone:
		done := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if recurrence.IsDoneForDay(t, today) {
				done = append(done, t)
			}
		}
		tasks = done
	}
	return recurrence.SortTasks(tasks, sort, today), nil
}

func (s *taskService) Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updateData.Type != "" && !validTaskType(updateData.Type) {
		return nil, ErrInvalidTaskType
	}

	existingTask.Title = updateData.Title
	existingTask.Description = updateData.Description
	if updateData.Type != "" {
		existingTask.Type = updateData.Type
	}
	existingTask.DaysOfWeek = updateData.DaysOfWeek
	existingTask.DateRanges = updateData.DateRanges
	existingTask.PlannedDates = updateData.PlannedDates

	if err := s.repo.Update(ctx, existingTask); err != nil {
		return nil, err
	}
	return existingTask, nil
}

func (s *taskService) Archive(ctx context.Context, id int64, now time.Time) error {
	// The archive boundary is a day-start: the task stays valid for history
	// strictly before it and occurs on no day at or after it.
	return s.repo.Archive(ctx, id, recurrence.DayStartUTC(now))
}

func (s *taskService) ToggleDone(ctx context.Context, id int64, dayStart int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := recurrence.ToggleDoneForDay(*task, dayStart)
	if err := s.repo.UpdateCompletion(ctx, id, updated.DailyDoneDates, updated.Completed); err != nil {
		return nil, err
	}
	return &updated, nil
}
