package routes

import (
	"github.com/gin-gonic/gin"

	"taskmate/internal/handlers"
)

// SetupRoutes mounts the REST surface under /api. Everything except health,
// signup, login, logout and refresh-token sits behind auth.
func SetupRoutes(
	r *gin.Engine,
	auth gin.HandlerFunc,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	notificationHandler *handlers.NotificationHandler,
	aiHandler *handlers.AIHandler,
) *gin.Engine {
	api := r.Group("/api")

	// ---- public
	api.GET("/health", handlers.Health)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/refresh-token", authHandler.RefreshToken)
		authGroup.GET("/me", auth, authHandler.Me)
	}

	// ---- protected
	protected := api.Group("")
	protected.Use(auth)

	users := protected.Group("/users")
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.PUT("/theme", userHandler.UpdateTheme)
	}

	tasks := protected.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		// registered before /:id
		tasks.GET("/stats/summary", taskHandler.Stats)
		tasks.GET("/:id", taskHandler.Get)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread/count", notificationHandler.UnreadCount)
		notifications.PUT("/mark-all/read", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
		notifications.DELETE("/read/all", notificationHandler.DeleteAllRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	ai := protected.Group("/ai")
	{
		ai.POST("/generate-report", aiHandler.GenerateReport)
		ai.POST("/generate-report/pdf", aiHandler.GenerateReportPDF)
	}

	return r
}
