package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/notification"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Upload is one incoming file part, already opened by the handler.
type Upload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// IssueService is the issue lifecycle engine: creation, tenant edits, status
// transitions and contractor assignment.
type IssueService struct {
	Repos         *repository.Repos
	Store         storage.Store
	Notifications *NotificationService
}

func NewIssueService(repos *repository.Repos, store storage.Store, notifications *NotificationService) *IssueService {
	return &IssueService{Repos: repos, Store: store, Notifications: notifications}
}

// resolveActor loads the caller and their typed role for authorization checks
// and notification provenance.
func resolveActor(repos *repository.Repos, userID uint) (user.User, notification.Actor, error) {
	u, err := repos.User.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, notification.Actor{}, ErrUserNotFound
	}
	if err != nil {
		return u, notification.Actor{}, err
	}
	actor := notification.Actor{UserID: u.ID, Role: u.Role.Tag(), Name: u.FullName}
	return u, actor, nil
}

func (s *IssueService) CreateIssue(ctx context.Context, tenantID uint, input issue.CreateIssueDTO, images []Upload) (*issue.Issue, error) {
	if _, _, err := resolveActor(s.Repos, tenantID); err != nil {
		return nil, err
	}
	if _, err := s.Repos.Issue.GetCategoryByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	i := &issue.Issue{
		TenantID:    tenantID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Status:      issue.StatusReceived,
	}
	if err := s.Repos.Issue.CreateIssue(i); err != nil {
		return nil, err
	}

	for _, img := range images {
		objectName := fmt.Sprintf("issues/%d/%s%s", i.ID, uuid.NewString(), filepath.Ext(img.Filename))
		url, err := s.Store.Save(ctx, img.Reader, img.Size, objectName, img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store issue image: %w", err)
		}
		row := &issue.Image{IssueID: i.ID, ImageURL: url}
		if err := s.Repos.Issue.AddIssueImage(row); err != nil {
			return nil, err
		}
		i.Images = append(i.Images, *row)
	}

	return i, nil
}

func (s *IssueService) GetIssue(id uint) (*issue.Issue, error) {
	i, err := s.Repos.Issue.GetIssueByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// GetIssueFor applies the read rules: owners, managers and admins see the
// issue; a contractor only when assigned to it.
func (s *IssueService) GetIssueFor(callerID, issueID uint) (*issue.Issue, error) {
	i, err := s.GetIssue(issueID)
	if err != nil {
		return nil, err
	}
	ok, err := canAccessIssue(s.Repos, callerID, i)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return i, nil
}

func (s *IssueService) ListTenantIssues(tenantID uint, filter issue.ListFilter) ([]issue.Issue, error) {
	return s.Repos.Issue.ListIssuesByTenant(tenantID, filter)
}

// ListAllIssues is the manager/admin view.
func (s *IssueService) ListAllIssues(callerID uint, filter issue.ListFilter) ([]issue.Issue, error) {
	_, actor, err := resolveActor(s.Repos, callerID)
	if err != nil {
		return nil, err
	}
	if actor.Role != user.RoleManager && actor.Role != user.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.Repos.Issue.ListIssues(filter)
}

func (s *IssueService) ListCategories() ([]issue.Category, error) {
	return s.Repos.Issue.ListCategories()
}

// UpdateIssue lets the owning tenant edit the report, but only before any
// processing has started.
func (s *IssueService) UpdateIssue(tenantID, issueID uint, input issue.UpdateIssueDTO) (*issue.Issue, error) {
	i, err := s.Repos.Issue.GetIssueByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	if i.TenantID != tenantID || i.Status != issue.StatusReceived {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		i.Title = *input.Title
	}
	if input.Description != nil {
		i.Description = input.Description
	}
	if input.Location != nil {
		i.Location = input.Location
	}
	if input.CategoryID != nil {
		if _, err := s.Repos.Issue.GetCategoryByID(*input.CategoryID); err != nil {
			return nil, ErrCategoryNotFound
		}
		i.CategoryID = *input.CategoryID
	}

	if err := s.Repos.Issue.UpdateIssue(&i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *IssueService) DeleteIssue(tenantID, issueID uint) error {
	i, err := s.Repos.Issue.GetIssueByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIssueNotFound
	}
	if err != nil {
		return err
	}
	if i.TenantID != tenantID || i.Status != issue.StatusReceived {
		return ErrForbidden
	}

	return s.Repos.ExecTx(func(tx *repository.Repos) error {
		return tx.Issue.DeleteIssueCascade(issueID)
	})
}

// applyIssueTransition validates and commits one issue transition, writing
// through to the active assignment and notifying the tenant, all in one
// transaction.
func (s *IssueService) applyIssueTransition(i issue.Issue, newStatus issue.Status, actor notification.Actor) error {
	if !issue.ValidStatus(newStatus) {
		return ErrInvalidStatus
	}
	if !i.Status.CanTransition(newStatus) {
		return ErrInvalidState
	}

	oldStatus := i.Status
	return s.Repos.ExecTx(func(tx *repository.Repos) error {
		if err := tx.Issue.UpdateIssueStatus(i.ID, newStatus); err != nil {
			return err
		}

		// Keep the assignment side of the pair in step.
		if a, err := tx.Assignment.GetActiveAssignmentByIssue(i.ID); err == nil {
			if mapped, ok := assignment.StatusForIssue(newStatus); ok && a.Status != mapped {
				a.Status = mapped
				if err := tx.Assignment.UpdateAssignment(&a); err != nil {
					return err
				}
				eventType := notification.TypeAssignmentUpdate
				if mapped == assignment.StatusRejected {
					eventType = notification.TypeAssignmentCancelled
				}
				if err := s.Notifications.DispatchAssignmentEvent(tx, a.ContractorID, a.ID, i.ID,
					eventType, actor, nil); err != nil {
					return err
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		issueID := i.ID
		return s.Notifications.DispatchStatusChange(tx, i.TenantID, &issueID,
			string(oldStatus), string(newStatus), actor)
	})
}

// ChangeIssueStatus is the tenant-initiated path; only the owner may move
// their own issue (in practice, cancellation).
func (s *IssueService) ChangeIssueStatus(actorID, issueID uint, newStatus string) error {
	_, actor, err := resolveActor(s.Repos, actorID)
	if err != nil {
		return err
	}

	i, err := s.Repos.Issue.GetIssueByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIssueNotFound
	}
	if err != nil {
		return err
	}
	if i.TenantID != actorID {
		return ErrForbidden
	}

	return s.applyIssueTransition(i, issue.Status(newStatus), actor)
}

// ManagerChangeIssueStatus is the override path for managers and admins.
func (s *IssueService) ManagerChangeIssueStatus(managerID, issueID uint, newStatus string) error {
	_, actor, err := resolveActor(s.Repos, managerID)
	if err != nil {
		return err
	}
	if actor.Role != user.RoleManager && actor.Role != user.RoleAdmin {
		return ErrForbidden
	}

	i, err := s.Repos.Issue.GetIssueByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIssueNotFound
	}
	if err != nil {
		return err
	}

	return s.applyIssueTransition(i, issue.Status(newStatus), actor)
}

// AssignContractor binds a contractor to a received issue. The partial unique
// index on assignments.issue_id backs the duplicate pre-check, so concurrent
// calls cannot both commit.
func (s *IssueService) AssignContractor(managerID, issueID uint, input issue.AssignContractorDTO) (*assignment.Assignment, error) {
	_, actor, err := resolveActor(s.Repos, managerID)
	if err != nil {
		return nil, err
	}
	if actor.Role != user.RoleManager && actor.Role != user.RoleAdmin {
		return nil, ErrForbidden
	}

	i, err := s.Repos.Issue.GetIssueByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	if i.Status != issue.StatusReceived {
		return nil, ErrInvalidState
	}

	contractor, err := s.Repos.User.GetUserByID(input.ContractorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if contractor.Role.Tag() != user.RoleContractor {
		return nil, ErrInvalidState
	}

	a := &assignment.Assignment{
		IssueID:       issueID,
		ContractorID:  contractor.ID,
		Status:        assignment.StatusAssigned,
		EstimatedCost: input.EstimatedCost,
		PlannedDate:   input.PlannedDate,
	}

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		if _, err := tx.Assignment.GetActiveAssignmentByIssue(issueID); err == nil {
			return ErrDuplicateAssignment
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Assignment.CreateAssignment(a); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateAssignment
			}
			return err
		}
		if err := tx.Issue.UpdateIssueStatus(issueID, issue.StatusAssigned); err != nil {
			return err
		}

		if err := s.Notifications.DispatchStatusChange(tx, i.TenantID, &i.ID,
			string(issue.StatusReceived), string(issue.StatusAssigned), actor); err != nil {
			return err
		}
		return s.Notifications.DispatchAssignmentEvent(tx, contractor.ID, a.ID, i.ID,
			notification.TypeNewAssignment, actor, input.Message)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
