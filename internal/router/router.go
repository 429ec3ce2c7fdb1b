package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/buglane-dev/buglane/internal/handlers"
	"github.com/buglane-dev/buglane/internal/middleware"
	"github.com/buglane-dev/buglane/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.ActivityFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PUT("/password", middleware.AuthMiddleware(), handlers.ChangePassword)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:id", handlers.GetUser)
			users.PATCH("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:id", handlers.GetProject)
			projects.PATCH("/:id", handlers.UpdateProject)
			projects.DELETE("/:id", handlers.DeleteProject)

			projects.GET("/:id/bugs", handlers.ListProjectBugs)
			projects.GET("/:id/summary", handlers.GetProjectSummary)
			projects.GET("/:id/activity", handlers.GetProjectActivity)
		}

		bugs := api.Group("/bugs", middleware.AuthMiddleware())
		{
			bugs.POST("", handlers.CreateBug)
			bugs.GET("/:id", handlers.GetBug)
			bugs.PATCH("/:id", handlers.UpdateBug)
			bugs.DELETE("/:id", handlers.DeleteBug)

			bugs.GET("/:id/comments", handlers.ListComments)
			bugs.POST("/:id/comments", handlers.CreateComment)
		}

		comments := api.Group("/comments", middleware.AuthMiddleware())
		{
			comments.PATCH("/:id", handlers.UpdateComment)
			comments.DELETE("/:id", handlers.DeleteComment)
		}
	}

	return r
}
