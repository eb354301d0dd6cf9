package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskmate/internal/models"
)

// MemoryStore keeps users, tasks and notifications in process memory.
// It backs local runs without DATABASE_URL and the service/handler tests.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]models.User
	tasks         map[string]models.Task
	notifications map[string]models.Notification
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         map[string]models.User{},
		tasks:         map[string]models.Task{},
		notifications: map[string]models.Notification{},
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Users() UserRepository                 { return memUsers{s} }
func (s *MemoryStore) Tasks() TaskRepository                 { return memTasks{s} }
func (s *MemoryStore) Notifications() NotificationRepository { return memNotifications{s} }

// ---- users ----

type memUsers struct{ s *MemoryStore }

func (r memUsers) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := strings.ToLower(user.Email)
	for _, u := range r.s.users {
		if u.Email == email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}
	user.Email = email
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r memUsers) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return ErrNotFound
	}
	email := strings.ToLower(user.Email)
	for id, u := range r.s.users {
		if id != user.ID && u.Email == email {
			return ErrDuplicateEmail
		}
	}
	user.Email = email
	r.s.users[user.ID] = *user
	return nil
}

// ---- tasks ----

type memTasks struct{ s *MemoryStore }

func cloneTask(t models.Task) models.Task {
	t.Tags = append([]string{}, t.Tags...)
	return t
}

func (r memTasks) Store(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	r.s.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r memTasks) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	t = cloneTask(t)
	return &t, nil
}

func (r memTasks) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.s.mu.RLock()
	out := []models.Task{}
	for _, t := range r.s.tasks {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		out = append(out, cloneTask(t))
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return taskLess(out[i], out[j], filter.SortBy) })
	return out, nil
}

// taskLess mirrors taskOrderBy.
func taskLess(a, b models.Task, by models.TaskSort) bool {
	switch by {
	case models.SortDueDate:
		switch {
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
	case models.SortPriority:
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra > rb
		}
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (r memTasks) Update(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	r.s.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (r memTasks) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r memTasks) CountByStatus(_ context.Context, userID string) (models.Stats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var st models.Stats
	for _, t := range r.s.tasks {
		if t.UserID != userID {
			continue
		}
		st.Total++
		switch t.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusInProgress:
			st.InProgress++
		case models.StatusCompleted:
			st.Completed++
		}
	}
	return st, nil
}

func (r memTasks) ListDueForReminder(_ context.Context, dueBefore time.Time, limit int) ([]models.Task, error) {
	r.s.mu.RLock()
	var out []models.Task
	for _, t := range r.s.tasks {
		if t.DueDate == nil || t.DueDate.After(dueBefore) || t.RemindedAt != nil || t.Status == models.StatusCompleted {
			continue
		}
		out = append(out, cloneTask(t))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memTasks) SetReminded(_ context.Context, id string, dueDate, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.RemindedAt != nil || t.DueDate == nil || !t.DueDate.Equal(dueDate) {
		return false, nil
	}
	t.RemindedAt = &at
	r.s.tasks[id] = t
	return true, nil
}

// ---- notifications ----

type memNotifications struct{ s *MemoryStore }

// resolve fills RelatedTask; caller holds the lock.
func (r memNotifications) resolve(n models.Notification) models.Notification {
	n.RelatedTask = nil
	if n.RelatedTaskID != nil {
		if t, ok := r.s.tasks[*n.RelatedTaskID]; ok {
			n.RelatedTask = &models.TaskRef{ID: t.ID, Title: t.Title, Status: t.Status}
		}
	}
	return n
}

func (r memNotifications) Store(_ context.Context, n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.s.now()
	}
	n.UpdatedAt = n.CreatedAt
	r.s.notifications[n.ID] = *n
	return nil
}

func (r memNotifications) FindByID(_ context.Context, id string) (*models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	n = r.resolve(n)
	return &n, nil
}

func (r memNotifications) List(_ context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	r.s.mu.RLock()
	var all []models.Notification
	for _, n := range r.s.notifications {
		if n.UserID != filter.UserID {
			continue
		}
		if filter.Read != nil && n.Read != *filter.Read {
			continue
		}
		if filter.Type != nil && n.Type != *filter.Type {
			continue
		}
		all = append(all, r.resolve(n))
	}
	r.s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)

	items := []models.Notification{}
	if filter.Offset >= 0 && filter.Offset < total {
		end := total
		if filter.Limit > 0 && filter.Offset+filter.Limit < end {
			end = filter.Offset + filter.Limit
		}
		items = append(items, all[filter.Offset:end]...)
	}
	return items, total, nil
}

func (r memNotifications) CountUnread(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c := 0
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.Read {
			c++
		}
	}
	return c, nil
}

func (r memNotifications) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil
	}
	n.Read = true
	n.UpdatedAt = r.s.now()
	r.s.notifications[id] = n
	return nil
}

func (r memNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	return r.mutate(func(n *models.Notification) (keep, changed bool) {
		if n.UserID != userID || n.Read {
			return true, false
		}
		n.Read = true
		n.UpdatedAt = r.s.now()
		return true, true
	})
}

func (r memNotifications) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notifications[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

func (r memNotifications) DeleteReadByUser(_ context.Context, userID string) (int64, error) {
	return r.mutate(func(n *models.Notification) (bool, bool) {
		drop := n.UserID == userID && n.Read
		return !drop, drop
	})
}

func (r memNotifications) DeleteByTask(_ context.Context, taskID string) (int64, error) {
	return r.mutate(func(n *models.Notification) (bool, bool) {
		drop := n.RelatedTaskID != nil && *n.RelatedTaskID == taskID
		return !drop, drop
	})
}

func (r memNotifications) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	return r.mutate(func(n *models.Notification) (bool, bool) {
		drop := n.Read && n.CreatedAt.Before(cutoff)
		return !drop, drop
	})
}

// mutate applies fn to every notification under the write lock and
// returns how many were changed or dropped.
func (r memNotifications) mutate(fn func(n *models.Notification) (keep, changed bool)) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for id, n := range r.s.notifications {
		keep, changed := fn(&n)
		if changed {
			count++
		}
		if !keep {
			delete(r.s.notifications, id)
			continue
		}
		r.s.notifications[id] = n
	}
	return count, nil
}
