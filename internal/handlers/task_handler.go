package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmate/internal/models"
	"taskmate/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// @Summary   Создать задачу
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Success   201  {object}  map[string]interface{}
// @Failure   400  {object}  map[string]interface{}
// @Router    /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		DueDate     string              `json:"dueDate"` // RFC3339 or YYYY-MM-DD
		Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
		Tags        []string            `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "task.create", err)
		return
	}

	in := models.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Tags:        req.Tags,
	}
	if req.DueDate != "" {
		t, err := parseDate(req.DueDate)
		if err != nil {
			log.Printf("[task][create][err] invalid dueDate=%q: %v", req.DueDate, err)
			fail(c, http.StatusBadRequest, "Invalid dueDate (RFC3339 or YYYY-MM-DD)")
			return
		}
		in.DueDate = &t
	}

	task, err := h.service.Create(c.Request.Context(), me.ID, in)
	if err != nil {
		respondError(c, "task.create", err, "Failed to create task")
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "Task created successfully", "task": task})
}

// @Summary   Список задач
// @Tags      Tasks
// @Produce   json
// @Param     status    query  string  false  "pending | in-progress | completed"
// @Param     priority  query  string  false  "low | medium | high"
// @Param     sortBy    query  string  false  "createdAt | dueDate | priority"
// @Success   200  {object}  map[string]interface{}
// @Router    /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	filter := models.TaskFilter{UserID: me.ID, SortBy: models.TaskSort(c.Query("sortBy"))}
	if v := c.Query("status"); v != "" {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v := c.Query("priority"); v != "" {
		p := models.TaskPriority(v)
		filter.Priority = &p
	}

	tasks, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "task.list", err, "Failed to fetch tasks")
		return
	}
	respond(c, http.StatusOK, gin.H{"count": len(tasks), "tasks": tasks})
}

// GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	task, err := h.service.Get(c.Request.Context(), me.ID, c.Param("id"))
	if err != nil {
		respondError(c, "task.get", err, "Failed to fetch task")
		return
	}
	respond(c, http.StatusOK, gin.H{"task": task})
}

// PUT /tasks/:id
// Omitted fields are kept; "dueDate": "" clears the due date.
func (h *TaskHandler) Update(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *models.TaskStatus   `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
		DueDate     *string              `json:"dueDate"`
		Priority    *models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
		Tags        *[]string            `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "task.update", err)
		return
	}

	in := models.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tags:        req.Tags,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			in.ClearDueDate = true
		} else {
			t, err := parseDate(*req.DueDate)
			if err != nil {
				log.Printf("[task][update][err] invalid dueDate=%q: %v", *req.DueDate, err)
				fail(c, http.StatusBadRequest, "Invalid dueDate (RFC3339 or YYYY-MM-DD)")
				return
			}
			in.DueDate = &t
		}
	}

	task, err := h.service.Update(c.Request.Context(), me.ID, c.Param("id"), in)
	if err != nil {
		respondError(c, "task.update", err, "Failed to update task")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Task updated successfully", "task": task})
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), me.ID, c.Param("id")); err != nil {
		respondError(c, "task.delete", err, "Failed to delete task")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// @Summary   Статистика задач
// @Tags      Tasks
// @Produce   json
// @Success   200  {object}  map[string]interface{}
// @Router    /tasks/stats/summary [get]
func (h *TaskHandler) Stats(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.service.Summary(c.Request.Context(), me.ID)
	if err != nil {
		respondError(c, "task.stats", err, "Failed to fetch statistics")
		return
	}
	respond(c, http.StatusOK, gin.H{"stats": stats})
}
