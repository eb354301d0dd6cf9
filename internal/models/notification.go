package models

import "time"

type NotificationType string

const (
	NotificationTask     NotificationType = "task"
	NotificationReminder NotificationType = "reminder"
	NotificationInfo     NotificationType = "info"
	NotificationWarning  NotificationType = "warning"
	NotificationSuccess  NotificationType = "success"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTask, NotificationReminder, NotificationInfo, NotificationWarning, NotificationSuccess:
		return true
	}
	return false
}

const MaxNotificationMessageLen = 250

// NotificationRetention is how long a read notification is kept after creation.
const NotificationRetention = 30 * 24 * time.Hour

// TaskRef is the denormalized view of the related task shown next to a notification.
type TaskRef struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Status TaskStatus `json:"status"`
}

type Notification struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Message       string           `json:"message"`
	Type          NotificationType `json:"type"`
	Read          bool             `json:"read"`
	RelatedTaskID *string          `json:"relatedTaskId"`
	RelatedTask   *TaskRef         `json:"relatedTask"`
	ActionURL     *string          `json:"actionUrl"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type NotificationFilter struct {
	UserID string
	Read   *bool
	Type   *NotificationType
	Limit  int
	Offset int
}

// NotificationPage is one page of a user's notifications, newest first.
type NotificationPage struct {
	Items      []Notification
	Total      int
	Page       int
	TotalPages int
}
