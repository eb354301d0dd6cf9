package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskmate/internal/models"
)

type NotificationRepository interface {
	Store(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteReadByUser(ctx context.Context, userID string) (int64, error)
	DeleteByTask(ctx context.Context, taskID string) (int64, error)
	// DeleteReadBefore removes read notifications created before cutoff.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// related task is a lookup, not ownership: LEFT JOIN so a deleted task yields NULLs
const notificationSelect = `
SELECT n.id, n.user_id, n.message, n.type, n.read, n.related_task_id, n.action_url,
       n.created_at, n.updated_at, t.id, t.title, t.status
FROM notifications n
LEFT JOIN tasks t ON t.id = n.related_task_id`

func scanNotification(row rowScanner) (models.Notification, error) {
	var (
		n         models.Notification
		taskID    sql.NullString
		taskTitle sql.NullString
		taskState sql.NullString
	)
	err := row.Scan(
		&n.ID, &n.UserID, &n.Message, &n.Type, &n.Read, &n.RelatedTaskID, &n.ActionURL,
		&n.CreatedAt, &n.UpdatedAt, &taskID, &taskTitle, &taskState,
	)
	if err != nil {
		return n, err
	}
	if taskID.Valid {
		n.RelatedTask = &models.TaskRef{
			ID:     taskID.String,
			Title:  taskTitle.String,
			Status: models.TaskStatus(taskState.String),
		}
	}
	return n, nil
}

func (r *notificationRepository) Store(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = n.CreatedAt
	query := `
		INSERT INTO notifications (id, user_id, message, type, read, related_task_id, action_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Message, n.Type, n.Read, n.RelatedTaskID, n.ActionURL, n.CreatedAt, n.UpdatedAt,
	)
	return err
}

func (r *notificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	n, err := scanNotification(r.db.QueryRowContext(ctx, notificationSelect+` WHERE n.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	conditions := []string{"n.user_id = $1"}
	args := []interface{}{filter.UserID}
	argID := 2

	if filter.Read != nil {
		conditions = append(conditions, fmt.Sprintf("n.read = $%d", argID))
		args = append(args, *filter.Read)
		argID++
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("n.type = $%d", argID))
		args = append(args, *filter.Type)
		argID++
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications n`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := notificationSelect + where +
		fmt.Sprintf(" ORDER BY n.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`, userID).Scan(&n)
	return n, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return r.exec(ctx,
		`UPDATE notifications SET read = TRUE, updated_at = NOW() WHERE user_id = $1 AND read = FALSE`, userID)
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	n, err := r.exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) DeleteReadByUser(ctx context.Context, userID string) (int64, error) {
	return r.exec(ctx, `DELETE FROM notifications WHERE user_id = $1 AND read = TRUE`, userID)
}

func (r *notificationRepository) DeleteByTask(ctx context.Context, taskID string) (int64, error) {
	if !validID(taskID) {
		return 0, nil
	}
	return r.exec(ctx, `DELETE FROM notifications WHERE related_task_id = $1`, taskID)
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.exec(ctx, `DELETE FROM notifications WHERE read = TRUE AND created_at < $1`, cutoff)
}

func (r *notificationRepository) exec(ctx context.Context, q string, args ...interface{}) (int64, error) {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
