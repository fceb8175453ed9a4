package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"focusboard/internal/models"
	"focusboard/internal/repositories"
)

// fakeTaskRepo is an in-memory TaskRepository with injectable failures.
type fakeTaskRepo struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]models.Task

	fetchErr      error           // returned by every collection fetch
	failUpdateIDs map[int64]error // per-row UpdateCompletion failures

	fetchCalls  int
	updateCalls int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		nextID:        1,
		tasks:         make(map[int64]models.Task),
		failUpdateIDs: make(map[int64]error),
	}
}

func (r *fakeTaskRepo) put(task models.Task) models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == 0 {
		task.ID = r.nextID
		r.nextID++
	}
	r.tasks[task.ID] = task.Clone()
	return task
}

func (r *fakeTaskRepo) get(id int64) (models.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	return t.Clone(), ok
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	stored := r.put(*task)
	task.ID = stored.ID
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	t, ok := r.get(id)
	if !ok {
		return nil, repositories.ErrTaskNotFound
	}
	return &t, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.Lock()
	r.fetchCalls++
	r.mu.Unlock()
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Task
	for _, t := range r.tasks {
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if !filter.IncludeArchived && t.Archived {
			continue
		}
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTaskRepo) FindActiveByType(ctx context.Context, taskType models.TaskType) ([]models.Task, error) {
	return r.FindAll(ctx, models.TaskFilter{Type: &taskType})
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return repositories.ErrTaskNotFound
	}
	r.tasks[task.ID] = task.Clone()
	return nil
}

func (r *fakeTaskRepo) UpdateCompletion(_ context.Context, id int64, doneDates []int64, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if err, ok := r.failUpdateIDs[id]; ok {
		return err
	}
	t, ok := r.tasks[id]
	if !ok {
		return repositories.ErrTaskNotFound
	}
	t.DailyDoneDates = append([]int64(nil), doneDates...)
	t.Completed = completed
	r.tasks[id] = t
	return nil
}

func (r *fakeTaskRepo) Archive(_ context.Context, id int64, archivedAt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return repositories.ErrTaskNotFound
	}
	t.Archived = true
	t.ArchivedAt = &archivedAt
	r.tasks[id] = t
	return nil
}

var errRowBroken = errors.New("row update rejected")
