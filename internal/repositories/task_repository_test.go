package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/models"
)

var taskCols = []string{
	"id", "user_id", "title", "description", "status", "priority", "due_date", "tags",
	"completed_at", "reminded_at", "created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, mock
}

func TestTaskRepository_FindAllFiltersAndSorts(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTaskRepository(conn)

	userID := uuid.NewString()
	status := models.StatusPending
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND status = $2 ORDER BY due_date ASC NULLS LAST")).
		WithArgs(userID, status).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(uuid.NewString(), userID, "a", "", "pending", "high", now, "{work,home}", nil, nil, now, now).
			AddRow(uuid.NewString(), userID, "b", "", "pending", "low", nil, "{}", nil, nil, now, now))

	tasks, err := repo.FindAll(context.Background(), models.TaskFilter{
		UserID: userID, Status: &status, SortBy: models.SortDueDate,
	})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, []string{"work", "home"}, tasks[0].Tags)
	require.NotNil(t, tasks[0].DueDate)
	assert.Nil(t, tasks[1].DueDate)
	assert.Equal(t, []string{}, tasks[1].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_PriorityOrder(t *testing.T) {
	assert.Contains(t, taskOrderBy(models.SortPriority), "WHEN 'high' THEN 3")
	assert.Equal(t, "created_at DESC", taskOrderBy("bogus"))
}

func TestTaskRepository_FindByIDInvalidUUID(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTaskRepository(conn)

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindByIDNoRows(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTaskRepository(conn)
	id := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepository_StoreAssignsID(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTaskRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(sqlmock.AnyArg(), "u1", "title", "", models.StatusPending, models.PriorityMedium,
			nil, sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &models.Task{UserID: "u1", Title: "title", Status: models.StatusPending, Priority: models.PriorityMedium}
	require.NoError(t, repo.Store(context.Background(), task))
	_, err := uuid.Parse(task.ID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_DeleteMissing(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTaskRepository(conn)
	id := uuid.NewString()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNotFound)
}

func TestTaskRepository_CountByStatus(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTaskRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE status = 'pending')")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "in_progress", "completed"}).AddRow(6, 3, 2, 1))

	st, err := repo.CountByStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 6, Pending: 3, InProgress: 2, Completed: 1}, st)
}

func TestTaskRepository_CountByStatusEmpty(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTaskRepository(conn)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "in_progress", "completed"}).AddRow(0, 0, 0, 0))

	st, err := repo.CountByStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.Stats{}, st)
}

func TestTaskRepository_SetRemindedBoundToDueDate(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewTaskRepository(conn)
	id := uuid.NewString()
	due := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	at := due.Add(-2 * time.Hour)

	q := regexp.QuoteMeta("WHERE id = $2 AND reminded_at IS NULL AND due_date = $3")
	mock.ExpectExec(q).WithArgs(at, id, due).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(at, id, due).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.SetReminded(context.Background(), id, due, at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetReminded(context.Background(), id, due, at)
	require.NoError(t, err)
	assert.False(t, ok, "due date changed or already reminded")
	assert.NoError(t, mock.ExpectationsWereMet())
}
