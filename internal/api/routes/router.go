package routes

import (
	"github.com/fixtrack/fixtrack/internal/api/handlers"
	"github.com/fixtrack/fixtrack/internal/api/middleware"
	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store storage.Store) {
	repos := repository.NewRepositories(db)
	services := application.New(repos, store)
	h := handlers.New(services, repos, r)
	authz := middleware.NewAuth(repos)

	// public
	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.GET("/ws/notifications", h.Notification.Stream)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		// profile self-service
		profile := auth.Group("/profile")
		{
			profile.GET("", h.User.GetProfile)
			profile.PUT("", h.User.UpdateProfile)
			profile.PUT("/password", h.User.ChangePassword)
		}

		// issues
		issues := auth.Group("/issues")
		{
			issues.POST("", authz.RequireRole(user.RoleTenant), h.Issue.CreateIssue)
			issues.GET("/my", h.Issue.ListMyIssues)
			issues.GET("", authz.RequireRole(user.RoleManager, user.RoleAdmin), h.Issue.ListIssues)
			issues.GET("/:id", h.Issue.GetIssue)
			issues.PUT("/:id", h.Issue.UpdateIssue)
			issues.DELETE("/:id", h.Issue.DeleteIssue)
			issues.PATCH("/:id/status", h.Issue.ChangeStatus)
			issues.PATCH("/:id/manager-status", authz.RequireRole(user.RoleManager, user.RoleAdmin), h.Issue.ManagerChangeStatus)
			issues.POST("/:id/assign", authz.RequireRole(user.RoleManager, user.RoleAdmin), h.Issue.AssignContractor)

			issues.GET("/:id/comments", h.Feedback.ListComments)
			issues.POST("/:id/comments", h.Feedback.AddComment)
			issues.POST("/:id/rating", authz.RequireRole(user.RoleTenant), h.Feedback.RateIssue)
			issues.GET("/:id/rating", h.Feedback.GetRating)
		}
		auth.GET("/categories", h.Issue.ListCategories)
		auth.GET("/contractors", authz.RequireRole(user.RoleManager, user.RoleAdmin), h.User.ListContractors)

		// assignments (contractor workspace)
		assignments := auth.Group("/assignments", authz.RequireRole(user.RoleContractor))
		{
			assignments.GET("", h.Assignment.ListMyAssignments)
			assignments.GET("/:id", h.Assignment.GetAssignment)
			assignments.PATCH("/:id/status", h.Assignment.UpdateStatus)
			assignments.POST("/:id/reject", h.Assignment.Reject)
			assignments.PATCH("/:id/cost", h.Assignment.UpdateCost)
			assignments.POST("/:id/images", h.Assignment.UploadImage)
			assignments.POST("/:id/documents", h.Assignment.UploadDocument)
			assignments.POST("/:id/completion", h.Assignment.UploadCompletion)
		}

		// notifications
		notifications := auth.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListMyNotifications)
			notifications.PATCH("/:id/read", h.Notification.MarkRead)
			notifications.PATCH("/read-all", h.Notification.MarkAllRead)

			contractor := notifications.Group("/assignments", authz.RequireRole(user.RoleContractor))
			{
				contractor.GET("", h.Notification.ListContractorNotifications)
				contractor.PATCH("/:id/read", h.Notification.MarkContractorNotificationRead)
				contractor.PATCH("/read-all", h.Notification.MarkAllContractorNotificationsRead)
			}
		}

		// surveys
		surveys := auth.Group("/surveys")
		{
			surveys.POST("", authz.RequireRole(user.RoleTenant), h.Feedback.SubmitSurvey)
			surveys.GET("/my", h.Feedback.ListMySurveys)
			surveys.GET("", authz.RequireRole(user.RoleManager, user.RoleAdmin), h.Feedback.ListSurveys)
			surveys.GET("/stats", authz.RequireRole(user.RoleManager, user.RoleAdmin), h.Feedback.SurveyStats)
		}

		// role applications
		applications := auth.Group("/applications")
		{
			applications.POST("/contractor", h.Admin.ApplyForContractor)
			applications.POST("/manager", h.Admin.ApplyForManager)
			applications.GET("/status", h.Admin.ApplicationStatus)
		}

		// dashboards
		dashboard := auth.Group("/dashboard")
		{
			dashboard.GET("/tenant", authz.RequireRole(user.RoleTenant), h.Dashboard.Tenant)
			dashboard.GET("/manager", authz.RequireRole(user.RoleManager, user.RoleAdmin), h.Dashboard.Manager)
			dashboard.GET("/contractor", authz.RequireRole(user.RoleContractor), h.Dashboard.Contractor)
		}

		// admin
		admin := auth.Group("/admin", authz.Admin())
		{
			admin.GET("/users", h.Admin.ListUsers)
			admin.GET("/users/stats", h.Admin.UserStats)
			admin.GET("/users/:id", h.Admin.GetUser)
			admin.POST("/users", h.Admin.CreateUser)
			admin.PUT("/users/:id", h.Admin.UpdateUser)
			admin.DELETE("/users/:id", h.Admin.DeleteUser)
			admin.GET("/users/:id/notes", h.Admin.ListNotes)

			admin.GET("/roles", h.Admin.ListRoles)
			admin.POST("/roles", h.Admin.CreateRole)
			admin.PUT("/roles/:id", h.Admin.UpdateRole)
			admin.DELETE("/roles/:id", h.Admin.DeleteRole)

			admin.POST("/notes", h.Admin.CreateNote)

			admin.GET("/role-requests", h.Admin.ListRoleRequests)
			admin.PUT("/role-requests/:id/approve", h.Admin.ApproveRoleRequest)
			admin.PUT("/role-requests/:id/reject", h.Admin.RejectRoleRequest)

			admin.GET("/settings", h.Admin.GetSettings)
			admin.PUT("/settings", h.Admin.UpdateSettings)

			admin.GET("/audit/logs", h.Admin.ListAuditLogs)
		}
	}
}
