package application

import (
	"errors"
	"strings"

	"github.com/fixtrack/fixtrack/internal/domain/notification"
	"github.com/fixtrack/fixtrack/internal/repository"
	"gorm.io/gorm"
)

// NotificationService is the dispatcher plus the read-side API. Dispatch
// helpers take a *Repos so lifecycle engines can pass their transactional
// copy and keep the notification in the same commit as the state change.
type NotificationService struct {
	Repos *repository.Repos
}

func NewNotificationService(repos *repository.Repos) *NotificationService {
	return &NotificationService{Repos: repos}
}

// DispatchStatusChange persists exactly one tenant-facing row. No batching,
// no retries, no dedup.
func (s *NotificationService) DispatchStatusChange(repos *repository.Repos, targetUserID uint, issueID *uint, oldStatus, newStatus string, actor notification.Actor) error {
	n := &notification.Notification{
		UserID:        targetUserID,
		IssueID:       issueID,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		ChangedByRole: string(actor.Role),
	}
	if actor.UserID != 0 {
		id := actor.UserID
		n.ChangedByID = &id
	}
	return repos.Notification.CreateNotification(n)
}

// DispatchAssignmentEvent persists exactly one contractor-facing row.
func (s *NotificationService) DispatchAssignmentEvent(repos *repository.Repos, contractorID, assignmentID, issueID uint, eventType string, actor notification.Actor, message *string) error {
	n := &notification.AssignmentNotification{
		ContractorID: contractorID,
		AssignmentID: assignmentID,
		IssueID:      issueID,
		Type:         eventType,
		AssignedBy:   actor.Name,
		Message:      message,
	}
	return repos.Notification.CreateAssignmentNotification(n)
}

func (s *NotificationService) GetUserNotifications(userID uint) ([]notification.NotificationRead, error) {
	rows, err := s.Repos.Notification.ListNotificationsForUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]notification.NotificationRead, 0, len(rows))
	for _, n := range rows {
		read := notification.NotificationRead{
			ID:            n.ID,
			UserID:        n.UserID,
			IssueID:       n.IssueID,
			OldStatus:     n.OldStatus,
			NewStatus:     n.NewStatus,
			ChangedByID:   n.ChangedByID,
			ChangedByRole: n.ChangedByRole,
			IsRead:        n.IsRead,
			CreatedAt:     n.CreatedAt,
		}
		if n.IssueID != nil {
			if iss, err := s.Repos.Issue.GetIssueByID(*n.IssueID); err == nil {
				title := iss.Title
				read.IssueTitle = &title
			}
		}
		result = append(result, read)
	}
	return result, nil
}

func (s *NotificationService) GetUnreadAfter(userID, afterID uint) ([]notification.Notification, error) {
	return s.Repos.Notification.ListUnreadForUser(userID, afterID)
}

func (s *NotificationService) MarkRead(notificationID, userID uint) (notification.Notification, error) {
	n, err := s.Repos.Notification.MarkRead(notificationID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return n, ErrNotificationNotFound
	}
	return n, err
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.Repos.Notification.MarkAllRead(userID)
}

func (s *NotificationService) GetContractorNotifications(contractorID uint) ([]notification.AssignmentNotificationRead, error) {
	rows, err := s.Repos.Notification.ListAssignmentNotificationsForContractor(contractorID)
	if err != nil {
		return nil, err
	}

	result := make([]notification.AssignmentNotificationRead, 0, len(rows))
	for _, n := range rows {
		iss, err := s.Repos.Issue.GetIssueByID(n.IssueID)
		if err != nil {
			continue
		}
		read := notification.AssignmentNotificationRead{
			ID:               n.ID,
			AssignmentID:     n.AssignmentID,
			IssueID:          n.IssueID,
			IssueTitle:       iss.Title,
			IssueDescription: iss.Description,
			IssueLocation:    iss.Location,
			AssignedBy:       n.AssignedBy,
			AssignedAt:       n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			IsRead:           n.IsRead,
			Type:             n.Type,
			Message:          n.Message,
		}
		if iss.Category.Name != "" {
			category := strings.ToLower(iss.Category.Name)
			read.Category = &category
		}
		result = append(result, read)
	}
	return result, nil
}

func (s *NotificationService) MarkAssignmentNotificationRead(notificationID, contractorID uint) (notification.AssignmentNotification, error) {
	n, err := s.Repos.Notification.MarkAssignmentNotificationRead(notificationID, contractorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return n, ErrNotificationNotFound
	}
	return n, err
}

func (s *NotificationService) MarkAllAssignmentNotificationsRead(contractorID uint) error {
	return s.Repos.Notification.MarkAllAssignmentNotificationsRead(contractorID)
}
