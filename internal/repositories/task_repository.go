package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"focusboard/internal/models"
)

// ErrTaskNotFound is returned by id lookups and updates that match no row.
var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	// FindActiveByType returns the non-archived tasks of one type; the daily
	// reset job walks these.
	FindActiveByType(ctx context.Context, taskType models.TaskType) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	// UpdateCompletion persists only the completion state of one row: the
	// per-day done set and the completed flag.
	UpdateCompletion(ctx context.Context, id int64, doneDates []int64, completed bool) error
	Archive(ctx context.Context, id int64, archivedAt int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, type, created_at, archived, archived_at,
       completed, daily_done_dates, days_of_week, date_ranges, planned_dates`

// nil slices must reach postgres as '{}' / '[]', not NULL
func emptyIfNil(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}

func encodeRanges(ranges []models.DateRange) ([]byte, error) {
	if ranges == nil {
		ranges = []models.DateRange{}
	}
	return json.Marshal(ranges)
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	ranges, err := encodeRanges(task.DateRanges)
	if err != nil {
		return fmt.Errorf("encode date_ranges: %w", err)
	}
	query := `
		INSERT INTO tasks (
			title, description, type, created_at, archived, archived_at,
			completed, daily_done_dates, days_of_week, date_ranges, planned_dates
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Type, task.CreatedAt,
		task.Archived, task.ArchivedAt, task.Completed,
		pq.Array(emptyIfNil(task.DailyDoneDates)), pq.Array(emptyIfNil(task.DaysOfWeek)),
		ranges, pq.Array(emptyIfNil(task.PlannedDates)),
	).Scan(&task.ID)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argID))
		args = append(args, *filter.Type)
		argID++
	}
	if filter.Completed != nil {
		conditions = append(conditions, fmt.Sprintf("completed = $%d", argID))
		args = append(args, *filter.Completed)
		argID++
	}
	if !filter.IncludeArchived {
		conditions = append(conditions, "archived = FALSE")
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC, id DESC"

	return r.queryTasks(ctx, baseQuery, args...)
}

func (r *taskRepository) FindActiveByType(ctx context.Context, taskType models.TaskType) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE type = $1 AND archived = FALSE ORDER BY id`
	return r.queryTasks(ctx, query, taskType)
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	ranges, err := encodeRanges(task.DateRanges)
	if err != nil {
		return fmt.Errorf("encode date_ranges: %w", err)
	}
	query := `
		UPDATE tasks SET
			title=$1, description=$2, type=$3, completed=$4,
			daily_done_dates=$5, days_of_week=$6, date_ranges=$7, planned_dates=$8
		WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Type, task.Completed,
		pq.Array(emptyIfNil(task.DailyDoneDates)), pq.Array(emptyIfNil(task.DaysOfWeek)),
		ranges, pq.Array(emptyIfNil(task.PlannedDates)), task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *taskRepository) UpdateCompletion(ctx context.Context, id int64, doneDates []int64, completed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET daily_done_dates=$1, completed=$2 WHERE id=$3`,
		pq.Array(emptyIfNil(doneDates)), completed, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *taskRepository) Archive(ctx context.Context, id int64, archivedAt int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET archived=TRUE, archived_at=$1 WHERE id=$2`, archivedAt, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var (
		done    pq.Int64Array
		days    pq.Int64Array
		planned pq.Int64Array
		ranges  []byte
	)
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Type, &task.CreatedAt,
		&task.Archived, &task.ArchivedAt, &task.Completed,
		&done, &days, &ranges, &planned,
	)
	if err != nil {
		return nil, err
	}
	task.DailyDoneDates = []int64(done)
	task.DaysOfWeek = []int64(days)
	task.PlannedDates = []int64(planned)
	if len(ranges) > 0 {
		if err := json.Unmarshal(ranges, &task.DateRanges); err != nil {
			return nil, fmt.Errorf("decode date_ranges for task %d: %w", task.ID, err)
		}
	}
	return task, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
