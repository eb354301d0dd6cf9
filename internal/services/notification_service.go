package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"
	"unicode/utf8"

	"taskmate/internal/models"
	"taskmate/internal/repositories"
)

const (
	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

// NotificationQuery is a page request; Page and Limit are clamped.
type NotificationQuery struct {
	Read  *bool
	Type  *models.NotificationType
	Page  int
	Limit int
}

type NotificationService interface {
	TaskEvents

	// Notify stores a notification; the error is returned to the caller.
	Notify(ctx context.Context, n *models.Notification) error
	TaskDue(ctx context.Context, task *models.Task) error

	List(ctx context.Context, userID string, q NotificationQuery) (*models.NotificationPage, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteAllRead(ctx context.Context, userID string) (int64, error)
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

type notificationService struct {
	repo repositories.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repositories.NotificationRepository) NotificationService {
	return &notificationService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *notificationService) TaskCreated(ctx context.Context, task *models.Task) {
	s.emit(ctx, task, fmt.Sprintf("New task created: %s", task.Title))
}

func (s *notificationService) TaskStatusChanged(ctx context.Context, task *models.Task, _, to models.TaskStatus) {
	s.emit(ctx, task, fmt.Sprintf("Task \"%s\" status changed to %s", task.Title, to))
}

// emit is best effort: a failed insert is logged and swallowed.
func (s *notificationService) emit(ctx context.Context, task *models.Task, message string) {
	taskID := task.ID
	n := &models.Notification{
		UserID:        task.UserID,
		Message:       message,
		Type:          models.NotificationTask,
		RelatedTaskID: &taskID,
	}
	if err := s.Notify(ctx, n); err != nil {
		log.Printf("[notify][create][err] user=%s task=%s: %v", task.UserID, task.ID, err)
	}
}

func (s *notificationService) TaskDeleted(ctx context.Context, task *models.Task) error {
	n, err := s.repo.DeleteByTask(ctx, task.ID)
	if err != nil {
		return err
	}
	log.Printf("[notify][cascade][ok] task=%s deleted=%d", task.ID, n)
	return nil
}

func (s *notificationService) TaskDue(ctx context.Context, task *models.Task) error {
	taskID := task.ID
	return s.Notify(ctx, &models.Notification{
		UserID:        task.UserID,
		Message:       fmt.Sprintf("Task \"%s\" is due soon", task.Title),
		Type:          models.NotificationReminder,
		RelatedTaskID: &taskID,
	})
}

func (s *notificationService) Notify(ctx context.Context, n *models.Notification) error {
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}
	if !n.Type.Valid() {
		return validationError("Invalid notification type")
	}
	n.Message = truncateRunes(n.Message, models.MaxNotificationMessageLen)
	n.Read = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	return s.repo.Store(ctx, n)
}

func (s *notificationService) List(ctx context.Context, userID string, q NotificationQuery) (*models.NotificationPage, error) {
	if q.Type != nil && !q.Type.Valid() {
		return nil, validationError("Invalid notification type")
	}
	limit := q.Limit
	switch {
	case limit <= 0:
		limit = DefaultNotificationLimit
	case limit > MaxNotificationLimit:
		limit = MaxNotificationLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	// (page-1)*limit must stay a valid offset
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	items, total, err := s.repo.List(ctx, models.NotificationFilter{
		UserID: userID,
		Read:   q.Read,
		Type:   q.Type,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, internal("Failed to fetch notifications", err)
	}
	return &models.NotificationPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, internal("Failed to fetch unread count", err)
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	n, err := s.owned(ctx, userID, id, "update")
	if err != nil {
		return nil, err
	}
	if !n.Read {
		if err := s.repo.MarkRead(ctx, n.ID); err != nil {
			return nil, internal("Failed to update notification", err)
		}
		n.Read = true
		n.UpdatedAt = s.now()
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, internal("Failed to update notifications", err)
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, userID, id string) error {
	n, err := s.owned(ctx, userID, id, "delete")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, n.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("Notification not found")
		}
		return internal("Failed to delete notification", err)
	}
	return nil
}

func (s *notificationService) DeleteAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.DeleteReadByUser(ctx, userID)
	if err != nil {
		return 0, internal("Failed to delete notifications", err)
	}
	return n, nil
}

// PurgeExpired drops read notifications older than retention. Unread ones stay.
func (s *notificationService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = models.NotificationRetention
	}
	return s.repo.DeleteReadBefore(ctx, s.now().Add(-retention))
}

func (s *notificationService) owned(ctx context.Context, userID, id, verb string) (*models.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Notification not found")
		}
		return nil, internal("Failed to fetch notification", err)
	}
	if n.UserID != userID {
		return nil, forbidden(fmt.Sprintf("Not authorized to %s this notification", verb))
	}
	return n, nil
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
