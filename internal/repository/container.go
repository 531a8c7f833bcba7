package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	User         UserRepo
	Issue        IssueRepo
	Assignment   AssignmentRepo
	Notification NotificationRepo
	Feedback     FeedbackRepo
	Admin        AdminRepo
	Audit        AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:         NewUserRepo(db),
		Issue:        NewIssueRepo(db),
		Assignment:   NewAssignmentRepo(db),
		Notification: NewNotificationRepo(db),
		Feedback:     NewFeedbackRepo(db),
		Admin:        NewAdminRepo(db),
		Audit:        NewAuditRepo(db),
		db:           db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:         r.User.WithTx(tx),
		Issue:        r.Issue.WithTx(tx),
		Assignment:   r.Assignment.WithTx(tx),
		Notification: r.Notification.WithTx(tx),
		Feedback:     r.Feedback.WithTx(tx),
		Admin:        r.Admin.WithTx(tx),
		Audit:        r.Audit.WithTx(tx),
		db:           tx,
	}
}

// ExecTx runs fn against a transactional copy of every repository. State
// mutations and the notifications they emit share one commit.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
