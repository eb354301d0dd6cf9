package workers

import (
	"context"
	"log"
	"time"

	"taskmate/internal/models"
)

// Purger deletes read notifications older than the retention window.
type Purger interface {
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

// NotificationSweeper removes read notifications older than retention.
// Unread notifications are never swept.
func NotificationSweeper(p Purger, retention time.Duration) Job {
	return func(ctx context.Context) error {
		n, err := p.PurgeExpired(ctx, retention)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[sweeper][purge] deleted=%d", n)
		}
		return nil
	}
}

// DueTasks is the slice of the task store the reminder needs.
type DueTasks interface {
	ListDueForReminder(ctx context.Context, dueBefore time.Time, limit int) ([]models.Task, error)
	SetReminded(ctx context.Context, id string, dueDate, at time.Time) (bool, error)
}

// Reminders emits the reminder notification for one task.
type Reminders interface {
	TaskDue(ctx context.Context, task *models.Task) error
}

const reminderBatch = 200

// DueDateReminder notifies owners of tasks due within window (or overdue)
// that are not completed and were not reminded yet. Failures are logged and
// the task is retried on the next pass. The stamp is bound to the due date
// that was notified, so a due date changed mid-pass is not marked.
func DueDateReminder(tasks DueTasks, notify Reminders, window time.Duration, now func() time.Time) Job {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context) error {
		at := now().UTC()
		due, err := tasks.ListDueForReminder(ctx, at.Add(window), reminderBatch)
		if err != nil {
			return err
		}
		sent := 0
		for i := range due {
			task := &due[i]
			if err := notify.TaskDue(ctx, task); err != nil {
				log.Printf("[reminder][notify][err] task=%s: %v", task.ID, err)
				continue
			}
			stamped, err := tasks.SetReminded(ctx, task.ID, *task.DueDate, at)
			if err != nil {
				log.Printf("[reminder][mark][err] task=%s: %v", task.ID, err)
				continue
			}
			if !stamped {
				// due date moved while notifying; the next pass re-evaluates it
				log.Printf("[reminder][mark][stale] task=%s", task.ID)
				continue
			}
			sent++
		}
		if sent > 0 {
			log.Printf("[reminder][ok] sent=%d", sent)
		}
		return nil
	}
}
