package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskmate/internal/models"
	"taskmate/internal/services"
)

type NotificationHandler struct {
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// @Summary   Уведомления
// @Tags      Notifications
// @Produce   json
// @Param     read   query  bool    false  "filter by read flag"
// @Param     type   query  string  false  "task | reminder | info | warning | success"
// @Param     limit  query  int     false  "page size, 1..100"
// @Param     page   query  int     false  "page number"
// @Success   200  {object}  map[string]interface{}
// @Router    /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var q services.NotificationQuery
	if v := c.Query("read"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid read value")
			return
		}
		q.Read = &b
	}
	if v := c.Query("type"); v != "" {
		t := models.NotificationType(v)
		q.Type = &t
	}
	var err error
	if q.Limit, err = intQuery(c, "limit", services.DefaultNotificationLimit); err != nil {
		fail(c, http.StatusBadRequest, "Invalid limit value")
		return
	}
	if q.Page, err = intQuery(c, "page", 1); err != nil {
		fail(c, http.StatusBadRequest, "Invalid page value")
		return
	}
	if q.Limit < 1 {
		q.Limit = 1
	}

	page, err := h.service.List(c.Request.Context(), me.ID, q)
	if err != nil {
		respondError(c, "notify.list", err, "Failed to fetch notifications")
		return
	}
	respond(c, http.StatusOK, gin.H{
		"count":         len(page.Items),
		"total":         page.Total,
		"page":          page.Page,
		"pages":         page.TotalPages,
		"notifications": page.Items,
	})
}

// GET /notifications/unread/count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := h.service.UnreadCount(c.Request.Context(), me.ID)
	if err != nil {
		respondError(c, "notify.unread", err, "Failed to fetch unread count")
		return
	}
	respond(c, http.StatusOK, gin.H{"unreadCount": n})
}

// PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := h.service.MarkRead(c.Request.Context(), me.ID, c.Param("id"))
	if err != nil {
		respondError(c, "notify.read", err, "Failed to update notification")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Notification marked as read", "notification": n})
}

// PUT /notifications/mark-all/read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := h.service.MarkAllRead(c.Request.Context(), me.ID)
	if err != nil {
		respondError(c, "notify.read-all", err, "Failed to update notifications")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "All notifications marked as read", "updatedCount": n})
}

// DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), me.ID, c.Param("id")); err != nil {
		respondError(c, "notify.delete", err, "Failed to delete notification")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

// DELETE /notifications/read/all
func (h *NotificationHandler) DeleteAllRead(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := h.service.DeleteAllRead(c.Request.Context(), me.ID)
	if err != nil {
		respondError(c, "notify.delete-read", err, "Failed to delete notifications")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "All read notifications deleted", "deletedCount": n})
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
