package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/altproje-dev/altproje/internal/handlers"
	"github.com/altproje-dev/altproje/internal/middleware"
	"github.com/altproje-dev/altproje/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		// The registration and entry forms need the subject list pre-login.
		api.GET("/project-subjects", handlers.ListProjectSubjects)

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.GET("/ws/wordcount", handlers.WordCountFeed)

			authed.GET("/profile", handlers.Me)
			authed.PUT("/profile", handlers.UpdateProfile)

			authed.POST("/submissions", handlers.CreateSubmission)
			authed.GET("/submissions", handlers.ListMySubmissions)
			authed.GET("/submissions/:id", handlers.GetSubmission)
			authed.PUT("/submissions/:id", handlers.UpdateSubmission)
			authed.DELETE("/submissions/:id", handlers.DeleteSubmission)

			authed.GET("/timeline", handlers.ListTimeline)

			authed.GET("/files", handlers.ListSharedFiles)
			authed.GET("/files/:id/download", handlers.DownloadSharedFile)

			subjects := authed.Group("/project-subjects",
				middleware.RequireRoles(types.RoleAdmin, types.RoleIdareci))
			{
				subjects.POST("", handlers.CreateProjectSubject)
				subjects.PUT("/:id", handlers.UpdateProjectSubject)
				subjects.DELETE("/:id", handlers.DeleteProjectSubject)
			}

			admin := authed.Group("/admin")
			{
				admin.GET("/submissions",
					middleware.RequireRoles(types.RoleAdmin, types.RoleTubitakOkulYetkilisi),
					handlers.AdminListSubmissions)

				adminOnly := admin.Group("", middleware.RequireRoles(types.RoleAdmin))
				{
					adminOnly.GET("/users", handlers.AdminListUsers)
					adminOnly.PUT("/users/:id", handlers.AdminUpdateUser)
					adminOnly.DELETE("/users/:id", handlers.AdminDeleteUser)

					adminOnly.POST("/timeline", handlers.CreateTimelineItem)
					adminOnly.PUT("/timeline/:id", handlers.UpdateTimelineItem)
					adminOnly.DELETE("/timeline/:id", handlers.DeleteTimelineItem)

					adminOnly.POST("/files", handlers.UploadSharedFile)
					adminOnly.DELETE("/files/:id", handlers.DeleteSharedFile)
				}
			}
		}
	}

	return r
}
