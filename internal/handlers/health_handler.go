package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health is public and does not touch the database.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
