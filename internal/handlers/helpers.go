package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskmate/internal/middleware"
	"taskmate/internal/models"
	"taskmate/internal/services"
)

// respond writes a success envelope.
func respond(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Internal causes are only exposed when middleware.ErrorDetail enabled them.
func respondError(c *gin.Context, op string, err error, fallback string) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindNotAuthenticated, services.KindInvalidCredentials:
		status = http.StatusUnauthorized
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindNotFound:
		status = http.StatusNotFound
	}

	body := gin.H{"success": false, "message": services.MessageOf(err, fallback)}
	if status == http.StatusInternalServerError {
		log.Printf("[%s][err] %v", op, err)
		if middleware.ExposeErrors(c) {
			var se *services.Error
			if errors.As(err, &se) && se.Err != nil {
				body["error"] = se.Err.Error()
			} else {
				body["error"] = err.Error()
			}
		}
	}
	c.JSON(status, body)
}

func bindError(c *gin.Context, op string, err error) {
	log.Printf("[%s][bind][err] %v", op, err)
	fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
}

// currentUser returns the authenticated user or answers 401.
func currentUser(c *gin.Context) (*models.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized",
			"code":    middleware.CodeNoToken,
		})
		return nil, false
	}
	return u, true
}

// parseDate accepts RFC3339 or a bare YYYY-MM-DD date (UTC midnight).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
