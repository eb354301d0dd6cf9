package services

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/models"
	"taskmate/internal/repositories"
)

func seedNotifications(t *testing.T, svc NotificationService, userID string, n int) []*models.Notification {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	var out []*models.Notification
	for i := 0; i < n; i++ {
		item := &models.Notification{
			UserID:    userID,
			Message:   "m" + string(rune('a'+i)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, svc.Notify(context.Background(), item))
		out = append(out, item)
	}
	return out
}

func TestNotificationService_PaginationNewestFirst(t *testing.T) {
	svc := NewNotificationService(repositories.NewMemoryStore().Notifications())
	seedNotifications(t, svc, "u1", 5)

	page, err := svc.List(context.Background(), "u1", NotificationQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "mc", page.Items[0].Message)
	assert.Equal(t, "mb", page.Items[1].Message)
	assert.Equal(t, models.NotificationInfo, page.Items[0].Type)
}

func TestNotificationService_LimitClamped(t *testing.T) {
	svc := NewNotificationService(repositories.NewMemoryStore().Notifications())

	page, err := svc.List(context.Background(), "u1", NotificationQuery{Limit: 1000, Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)

	bad := models.NotificationType("alert")
	_, err = svc.List(context.Background(), "u1", NotificationQuery{Type: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNotificationService_HugePageIsEmptyNotPanic(t *testing.T) {
	svc := NewNotificationService(repositories.NewMemoryStore().Notifications())
	seedNotifications(t, svc, "u1", 2)

	page, err := svc.List(context.Background(), "u1", NotificationQuery{Limit: 3, Page: 4611686018427387905})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, math.MaxInt/3, page.Page)
}

func TestNotificationService_MarkAllReadIdempotent(t *testing.T) {
	svc := NewNotificationService(repositories.NewMemoryStore().Notifications())
	seedNotifications(t, svc, "u1", 3)
	seedNotifications(t, svc, "u2", 1)

	n, err := svc.MarkAllRead(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = svc.MarkAllRead(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	unread, err := svc.UnreadCount(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestNotificationService_CrossUserAccess(t *testing.T) {
	svc := NewNotificationService(repositories.NewMemoryStore().Notifications())
	items := seedNotifications(t, svc, "owner", 1)

	_, err := svc.MarkRead(context.Background(), "intruder", items[0].ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), "intruder", items[0].ID), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), "owner", "missing"), ErrNotFound)

	n, err := svc.MarkRead(context.Background(), "owner", items[0].ID)
	require.NoError(t, err)
	assert.True(t, n.Read)
}

func TestNotificationService_DeleteAllReadKeepsUnread(t *testing.T) {
	svc := NewNotificationService(repositories.NewMemoryStore().Notifications())
	items := seedNotifications(t, svc, "u1", 3)
	_, err := svc.MarkRead(context.Background(), "u1", items[0].ID)
	require.NoError(t, err)

	n, err := svc.DeleteAllRead(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	unread, err := svc.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)
}

func TestNotificationService_PurgeExpiredOnlyRead(t *testing.T) {
	svc := NewNotificationService(repositories.NewMemoryStore().Notifications())
	old := time.Now().UTC().Add(-40 * 24 * time.Hour)

	readOld := &models.Notification{UserID: "u1", Message: "read old", CreatedAt: old}
	unreadOld := &models.Notification{UserID: "u1", Message: "unread old", CreatedAt: old}
	require.NoError(t, svc.Notify(context.Background(), readOld))
	require.NoError(t, svc.Notify(context.Background(), unreadOld))
	_, err := svc.MarkRead(context.Background(), "u1", readOld.ID)
	require.NoError(t, err)

	n, err := svc.PurgeExpired(context.Background(), 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	page, err := svc.List(context.Background(), "u1", NotificationQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "unread old", page.Items[0].Message)
}

func TestNotificationService_MessageTruncated(t *testing.T) {
	svc := NewNotificationService(repositories.NewMemoryStore().Notifications())
	n := &models.Notification{UserID: "u1", Message: strings.Repeat("я", 300)}
	require.NoError(t, svc.Notify(context.Background(), n))
	assert.Equal(t, models.MaxNotificationMessageLen, len([]rune(n.Message)))
}

func TestNotificationService_RelatedTaskResolved(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, "u1", models.CreateTaskInput{Title: "linked"})
	require.NoError(t, err)

	page, err := f.notifications.List(ctx, "u1", NotificationQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].RelatedTask)
	assert.Equal(t, task.ID, page.Items[0].RelatedTask.ID)
	assert.Equal(t, "linked", page.Items[0].RelatedTask.Title)
	assert.Equal(t, models.StatusPending, page.Items[0].RelatedTask.Status)
}
