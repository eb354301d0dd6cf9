package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/models"
)

func TestMemoryTasks_SortRules(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tasks := store.Tasks()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	soon := base.Add(24 * time.Hour)
	later := base.Add(72 * time.Hour)

	add := func(title string, p models.TaskPriority, due *time.Time, created time.Time) {
		require.NoError(t, tasks.Store(ctx, &models.Task{
			UserID: "u1", Title: title, Status: models.StatusPending, Priority: p, DueDate: due, CreatedAt: created,
		}))
	}
	add("no-due", models.PriorityHigh, nil, base.Add(3*time.Hour))
	add("later", models.PriorityLow, &later, base.Add(2*time.Hour))
	add("soon", models.PriorityMedium, &soon, base.Add(time.Hour))
	require.NoError(t, tasks.Store(ctx, &models.Task{UserID: "u2", Title: "other", CreatedAt: base}))

	titles := func(sortBy models.TaskSort) []string {
		list, err := tasks.FindAll(ctx, models.TaskFilter{UserID: "u1", SortBy: sortBy})
		require.NoError(t, err)
		var out []string
		for _, task := range list {
			out = append(out, task.Title)
		}
		return out
	}

	assert.Equal(t, []string{"no-due", "later", "soon"}, titles(models.SortCreatedAt))
	assert.Equal(t, []string{"soon", "later", "no-due"}, titles(models.SortDueDate))
	assert.Equal(t, []string{"no-due", "soon", "later"}, titles(models.SortPriority))
}

func TestMemoryNotifications_DeleteReadBeforeKeepsUnread(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := store.Notifications()

	old := time.Now().Add(-31 * 24 * time.Hour)
	require.NoError(t, repo.Store(ctx, &models.Notification{UserID: "u1", Message: "old read", Read: true, CreatedAt: old}))
	require.NoError(t, repo.Store(ctx, &models.Notification{UserID: "u1", Message: "old unread", CreatedAt: old}))
	require.NoError(t, repo.Store(ctx, &models.Notification{UserID: "u1", Message: "new read", Read: true}))

	n, err := repo.DeleteReadBefore(ctx, time.Now().Add(-models.NotificationRetention))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	items, total, err := repo.List(ctx, models.NotificationFilter{UserID: "u1", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, item := range items {
		assert.NotEqual(t, "old read", item.Message)
	}
}

func TestMemoryUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	require.NoError(t, users.Create(ctx, &models.User{Name: "a", Email: "A@x.io"}))
	err := users.Create(ctx, &models.User{Name: "b", Email: "a@x.io"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	u, err := users.GetByEmail(ctx, "a@X.io")
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", u.Email)
}

func TestMemoryNotifications_NegativeOffsetIsEmpty(t *testing.T) {
	store := NewMemoryStore()
	repo := store.Notifications()
	require.NoError(t, repo.Store(context.Background(), &models.Notification{UserID: "u1", Message: "m", Type: models.NotificationInfo}))

	items, total, err := repo.List(context.Background(), models.NotificationFilter{UserID: "u1", Limit: 3, Offset: -6})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, total)
}

func TestMemoryTasks_SetRemindedIgnoresStaleDueDate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Tasks()
	due := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	task := &models.Task{UserID: "u1", Title: "t", Status: models.StatusPending, Priority: models.PriorityMedium, DueDate: &due}
	require.NoError(t, repo.Store(ctx, task))

	ok, err := repo.SetReminded(ctx, task.ID, due.Add(time.Hour), due)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.SetReminded(ctx, task.ID, due, due)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetReminded(ctx, task.ID, due, due)
	require.NoError(t, err)
	assert.False(t, ok, "already reminded")
}
