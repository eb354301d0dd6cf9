package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"taskmate/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, userID string) (models.Stats, error)

	ListDueForReminder(ctx context.Context, dueBefore time.Time, limit int) ([]models.Task, error)
	// SetReminded stamps the task only while it is still unreminded and its
	// due date equals dueDate; false means the task changed meanwhile.
	SetReminded(ctx context.Context, id string, dueDate, at time.Time) (bool, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, tags,
       completed_at, reminded_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t    models.Task
		tags pq.StringArray
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &tags,
		&t.CompletedAt, &t.RemindedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.Tags = []string(tags)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t, nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	query := `
		INSERT INTO tasks (
			id, user_id, title, description, status, priority, due_date, tags,
			completed_at, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, pq.StringArray(task.Tags), task.CompletedAt, task.CreatedAt, task.UpdatedAt,
	)
	return err
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}
	argID := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}

	baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	baseQuery += " ORDER BY " + taskOrderBy(filter.SortBy)

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func taskOrderBy(sortBy models.TaskSort) string {
	switch sortBy {
	case models.SortDueDate:
		return "due_date ASC NULLS LAST, created_at DESC"
	case models.SortPriority:
		return "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, status=$3, priority=$4, due_date=$5,
			tags=$6, completed_at=$7, reminded_at=$8, updated_at=$9
		WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.DueDate,
		pq.StringArray(task.Tags), task.CompletedAt, task.RemindedAt, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus always hits the table; stats are never cached.
func (r *taskRepository) CountByStatus(ctx context.Context, userID string) (models.Stats, error) {
	q := `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE status = 'pending'),
       COUNT(*) FILTER (WHERE status = 'in-progress'),
       COUNT(*) FILTER (WHERE status = 'completed')
FROM tasks
WHERE user_id = $1`
	var s models.Stats
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&s.Total, &s.Pending, &s.InProgress, &s.Completed)
	return s, err
}

func (r *taskRepository) ListDueForReminder(ctx context.Context, dueBefore time.Time, limit int) ([]models.Task, error) {
	q := `
SELECT ` + taskColumns + `
FROM tasks
WHERE due_date IS NOT NULL
  AND due_date <= $1
  AND reminded_at IS NULL
  AND status <> 'completed'
ORDER BY due_date ASC
LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, dueBefore, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *taskRepository) SetReminded(ctx context.Context, id string, dueDate, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE tasks SET reminded_at = $1
WHERE id = $2 AND reminded_at IS NULL AND due_date = $3`, at, id, dueDate)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
