package routes

import (
	"github.com/gin-gonic/gin"

	"focusboard/internal/handlers"
	"focusboard/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	reportHandler *handlers.ReportHandler,
	systemHandler *handlers.SystemHandler,
	jwtSecret []byte,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// ---- externally triggered batch jobs (shared secret, no JWT)
	system := r.Group("/system")
	{
		system.POST("/daily-reset", systemHandler.DailyReset)
		system.POST("/remind", systemHandler.Remind)
	}

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))

	tasks := r.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Archive)
		tasks.POST("/:id/toggle", taskHandler.ToggleDone)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/consistency", reportHandler.Consistency)
		reports.GET("/consistency/pdf", reportHandler.ConsistencyPDF)
	}

	return r
}
