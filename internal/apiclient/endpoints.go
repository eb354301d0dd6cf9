package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"taskmate/internal/models"
)

// ---- auth

func (c *Client) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, call{method: http.MethodPost, path: "/auth/signup", body: models.SignupRequest{
		Name: name, Email: email, Password: password,
	}}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, call{method: http.MethodPost, path: "/auth/login", body: models.LoginRequest{
		Email: email, Password: password,
	}}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/auth/logout"}, nil)
}

// Me validates the current session without attempting a refresh.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/auth/me"}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ---- users

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/users/profile"}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, call{method: http.MethodPut, path: "/users/profile", body: upd}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) SetTheme(ctx context.Context, theme models.Theme) error {
	return c.do(ctx, call{method: http.MethodPut, path: "/users/theme", body: map[string]models.Theme{"theme": theme}}, nil)
}

// ---- tasks

// TaskInput is the create payload. DueDate is RFC3339 or YYYY-MM-DD.
type TaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	DueDate     string              `json:"dueDate,omitempty"`
	Priority    models.TaskPriority `json:"priority,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
}

// TaskPatch is a partial update; nil fields are left unchanged and an empty
// DueDate clears the due date.
type TaskPatch struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *models.TaskStatus   `json:"status,omitempty"`
	DueDate     *string              `json:"dueDate,omitempty"`
	Priority    *models.TaskPriority `json:"priority,omitempty"`
	Tags        *[]string            `json:"tags,omitempty"`
}

type TaskQuery struct {
	Status   models.TaskStatus
	Priority models.TaskPriority
	SortBy   models.TaskSort
}

type taskEnvelope struct {
	Task models.Task `json:"task"`
}

func (c *Client) CreateTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	var out taskEnvelope
	if err := c.do(ctx, call{method: http.MethodPost, path: "/tasks", body: in}, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) ListTasks(ctx context.Context, q TaskQuery) ([]models.Task, error) {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Priority != "" {
		v.Set("priority", string(q.Priority))
	}
	if q.SortBy != "" {
		v.Set("sortBy", string(q.SortBy))
	}
	var out struct {
		Tasks []models.Task `json:"tasks"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/tasks", query: v}, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var out taskEnvelope
	if err := c.do(ctx, call{method: http.MethodGet, path: "/tasks/" + url.PathEscape(id)}, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	var out taskEnvelope
	if err := c.do(ctx, call{method: http.MethodPut, path: "/tasks/" + url.PathEscape(id), body: patch}, &out); err != nil {
		return nil, err
	}
	return &out.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/tasks/" + url.PathEscape(id)}, nil)
}

func (c *Client) TaskStats(ctx context.Context) (models.Stats, error) {
	var out struct {
		Stats models.Stats `json:"stats"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: "/tasks/stats/summary"}, &out)
	return out.Stats, err
}

// ---- notifications

type NotificationQuery struct {
	Read  *bool
	Type  models.NotificationType
	Page  int
	Limit int
}

type NotificationPage struct {
	Count         int                   `json:"count"`
	Total         int                   `json:"total"`
	Page          int                   `json:"page"`
	Pages         int                   `json:"pages"`
	Notifications []models.Notification `json:"notifications"`
}

func (c *Client) Notifications(ctx context.Context, q NotificationQuery) (*NotificationPage, error) {
	v := url.Values{}
	if q.Read != nil {
		v.Set("read", strconv.FormatBool(*q.Read))
	}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	var out NotificationPage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/notifications", query: v}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		UnreadCount int `json:"unreadCount"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: "/notifications/unread/count"}, &out)
	return out.UnreadCount, err
}

func (c *Client) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	var out struct {
		Notification models.Notification `json:"notification"`
	}
	path := "/notifications/" + url.PathEscape(id) + "/read"
	if err := c.do(ctx, call{method: http.MethodPut, path: path}, &out); err != nil {
		return nil, err
	}
	return &out.Notification, nil
}

func (c *Client) MarkAllRead(ctx context.Context) (int, error) {
	var out struct {
		UpdatedCount int `json:"updatedCount"`
	}
	err := c.do(ctx, call{method: http.MethodPut, path: "/notifications/mark-all/read"}, &out)
	return out.UpdatedCount, err
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/notifications/" + url.PathEscape(id)}, nil)
}

func (c *Client) DeleteAllRead(ctx context.Context) (int, error) {
	var out struct {
		DeletedCount int `json:"deletedCount"`
	}
	err := c.do(ctx, call{method: http.MethodDelete, path: "/notifications/read/all"}, &out)
	return out.DeletedCount, err
}

// ---- ai

type Report struct {
	Report string       `json:"report"`
	Stats  models.Stats `json:"stats"`
}

func (c *Client) GenerateReport(ctx context.Context) (*Report, error) {
	var out Report
	if err := c.do(ctx, call{method: http.MethodPost, path: "/ai/generate-report"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateReportPDF returns the raw PDF document.
func (c *Client) GenerateReportPDF(ctx context.Context) ([]byte, error) {
	return c.send(ctx, call{method: http.MethodPost, path: "/ai/generate-report/pdf"})
}
