// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities by severity: high > medium > low.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// Task represents the structure of a task in the system.
// CompletedAt is non-nil exactly when Status == StatusCompleted.
type Task struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	Tags        []string     `json:"tags"`
	CompletedAt *time.Time   `json:"completedAt"`
	RemindedAt  *time.Time   `json:"-"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type TaskSort string

const (
	SortCreatedAt TaskSort = "createdAt"
	SortDueDate   TaskSort = "dueDate"
	SortPriority  TaskSort = "priority"
)

// TaskFilter defines the available parameters for filtering tasks.
// UserID is always set by the service from the authenticated caller.
type TaskFilter struct {
	UserID   string
	Status   *TaskStatus
	Priority *TaskPriority
	SortBy   TaskSort
}

// CreateTaskInput is the validated payload for task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    TaskPriority
	Tags        []string
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
// ClearDueDate removes the due date.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *TaskPriority
	Tags         *[]string
}

// Stats is the live per-status count for one user's tasks.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}
