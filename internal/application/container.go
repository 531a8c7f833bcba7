package application

import (
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/storage"
)

type Services struct {
	User         *UserService
	Issue        *IssueService
	Assignment   *AssignmentService
	Notification *NotificationService
	Feedback     *FeedbackService
	Admin        *AdminService
	Dashboard    *DashboardService
}

func New(repos *repository.Repos, store storage.Store) *Services {
	notifications := NewNotificationService(repos)
	return &Services{
		User:         NewUserService(repos),
		Issue:        NewIssueService(repos, store, notifications),
		Assignment:   NewAssignmentService(repos, store, notifications),
		Notification: notifications,
		Feedback:     NewFeedbackService(repos),
		Admin:        NewAdminService(repos, store),
		Dashboard:    NewDashboardService(repos),
	}
}
