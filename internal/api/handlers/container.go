package handlers

import (
	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User         *UserHandler
	Issue        *IssueHandler
	Assignment   *AssignmentHandler
	Notification *NotificationHandler
	Feedback     *FeedbackHandler
	Admin        *AdminHandler
	Dashboard    *DashboardHandler
	Router       *gin.Engine
}

func New(svc *application.Services, repos *repository.Repos, router *gin.Engine) *Handlers {
	return &Handlers{
		User:         NewUserHandler(svc.User),
		Issue:        NewIssueHandler(svc.Issue, repos.Audit),
		Assignment:   NewAssignmentHandler(svc.Assignment),
		Notification: NewNotificationHandler(svc.Notification),
		Feedback:     NewFeedbackHandler(svc.Feedback),
		Admin:        NewAdminHandler(svc.Admin, repos.Audit),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		Router:       router,
	}
}
