// internal/services/task_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"taskmate/internal/models"
	"taskmate/internal/repositories"
)

// TaskEvents receives task lifecycle events.
// Created and StatusChanged are best effort and never fail the task operation.
type TaskEvents interface {
	TaskCreated(ctx context.Context, task *models.Task)
	TaskStatusChanged(ctx context.Context, task *models.Task, from, to models.TaskStatus)
	TaskDeleted(ctx context.Context, task *models.Task) error
}

// TaskService defines the task store operations. Every method is scoped
// to the calling user; ownership is checked before any read or write.
type TaskService interface {
	Create(ctx context.Context, userID string, in models.CreateTaskInput) (*models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, userID, id string) (*models.Task, error)
	Update(ctx context.Context, userID, id string, in models.UpdateTaskInput) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
	Summary(ctx context.Context, userID string) (models.Stats, error)
}

type taskService struct {
	repo   repositories.TaskRepository
	events TaskEvents
	now    func() time.Time
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, events TaskEvents) TaskService {
	return &taskService{repo: repo, events: events, now: func() time.Time { return time.Now().UTC() }}
}

func (s *taskService) Create(ctx context.Context, userID string, in models.CreateTaskInput) (*models.Task, error) {
	title, err := checkTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(in.Description) > models.MaxDescriptionLen {
		return nil, validationError(fmt.Sprintf("Description cannot exceed %d characters", models.MaxDescriptionLen))
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, validationError("Invalid priority value")
	}

	now := s.now()
	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      models.StatusPending,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        normalizeTags(in.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, internal("Failed to create task", err)
	}
	log.Printf("[task][create][ok] user=%s task=%s", userID, task.ID)

	if s.events != nil {
		s.events.TaskCreated(ctx, task)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, validationError("Invalid status value")
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, validationError("Invalid priority value")
	}
	switch filter.SortBy {
	case models.SortCreatedAt, models.SortDueDate, models.SortPriority:
	default:
		filter.SortBy = models.SortCreatedAt
	}
	tasks, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, internal("Failed to fetch tasks", err)
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, userID, id string) (*models.Task, error) {
	return s.owned(ctx, userID, id, "access")
}

func (s *taskService) Update(ctx context.Context, userID, id string, in models.UpdateTaskInput) (*models.Task, error) {
	task, err := s.owned(ctx, userID, id, "update")
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title, err := checkTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if in.Description != nil {
		if utf8.RuneCountInString(*in.Description) > models.MaxDescriptionLen {
			return nil, validationError(fmt.Sprintf("Description cannot exceed %d characters", models.MaxDescriptionLen))
		}
		task.Description = strings.TrimSpace(*in.Description)
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, validationError("Invalid priority value")
		}
		task.Priority = *in.Priority
	}
	if in.Tags != nil {
		task.Tags = normalizeTags(*in.Tags)
	}
	switch {
	case in.ClearDueDate:
		task.DueDate = nil
		task.RemindedAt = nil
	case in.DueDate != nil:
		if task.DueDate == nil || !task.DueDate.Equal(*in.DueDate) {
			task.RemindedAt = nil
		}
		task.DueDate = in.DueDate
	}

	now := s.now()
	previous := task.Status
	changed := false
	if in.Status != nil {
		next := *in.Status
		if !next.Valid() {
			return nil, validationError("Invalid status value")
		}
		if !canTransition(previous, next, TaskTransitions) {
			return nil, validationError(fmt.Sprintf("Cannot change status from %s to %s", previous, next))
		}
		if next != previous {
			changed = true
			task.Status = next
			switch {
			case next == models.StatusCompleted:
				task.CompletedAt = &now
			case previous == models.StatusCompleted:
				task.CompletedAt = nil
			}
		}
	}
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Task not found")
		}
		return nil, internal("Failed to update task", err)
	}
	log.Printf("[task][update][ok] user=%s task=%s status=%s", userID, task.ID, task.Status)

	if changed && s.events != nil {
		s.events.TaskStatusChanged(ctx, task, previous, task.Status)
	}
	return task, nil
}

// Delete removes the task, then every notification that references it.
// The two writes are not atomic: a failed cleanup leaves the task gone and
// is reported as an internal error.
func (s *taskService) Delete(ctx context.Context, userID, id string) error {
	task, err := s.owned(ctx, userID, id, "delete")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("Task not found")
		}
		return internal("Failed to delete task", err)
	}
	log.Printf("[task][delete][ok] user=%s task=%s", userID, task.ID)

	if s.events != nil {
		if err := s.events.TaskDeleted(ctx, task); err != nil {
			log.Printf("[task][delete][err] notifications cleanup task=%s: %v", task.ID, err)
			return internal("Failed to delete task notifications", err)
		}
	}
	return nil
}

// Summary is always a live count.
func (s *taskService) Summary(ctx context.Context, userID string) (models.Stats, error) {
	st, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return models.Stats{}, internal("Failed to fetch statistics", err)
	}
	return st, nil
}

// owned loads the task and checks it belongs to userID.
func (s *taskService) owned(ctx context.Context, userID, id, verb string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("Task not found")
		}
		return nil, internal("Failed to fetch task", err)
	}
	if task.UserID != userID {
		log.Printf("[task][%s][forbidden] user=%s task=%s", verb, userID, id)
		return nil, forbidden(fmt.Sprintf("Not authorized to %s this task", verb))
	}
	return task, nil
}

func checkTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", validationError("Task title is required")
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLen {
		return "", validationError(fmt.Sprintf("Title cannot exceed %d characters", models.MaxTitleLen))
	}
	return title, nil
}

// normalizeTags trims tags and drops empties and duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
