package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmate/internal/models"
	"taskmate/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.service.GetProfile(c.Request.Context(), me.ID)
	if err != nil {
		respondError(c, "user.profile", err, "Failed to load profile")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "user.profile", err)
		return
	}
	user, err := h.service.UpdateProfile(c.Request.Context(), me.ID, req)
	if err != nil {
		respondError(c, "user.profile", err, "Failed to update profile")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// PUT /users/theme
func (h *UserHandler) UpdateTheme(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Theme models.Theme `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "user.theme", err)
		return
	}
	theme, err := h.service.SetTheme(c.Request.Context(), me.ID, req.Theme)
	if err != nil {
		respondError(c, "user.theme", err, "Failed to update theme")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Theme updated successfully", "theme": theme})
}
