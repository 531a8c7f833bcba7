package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const docTypeWarranty = "warranty"

// AssignmentService is the contractor-facing side of the lifecycle: progress
// reporting, rejection, costs and completion evidence.
type AssignmentService struct {
	Repos         *repository.Repos
	Store         storage.Store
	Notifications *NotificationService
}

func NewAssignmentService(repos *repository.Repos, store storage.Store, notifications *NotificationService) *AssignmentService {
	return &AssignmentService{Repos: repos, Store: store, Notifications: notifications}
}

// getOwnAssignment loads an assignment and checks it belongs to the caller.
// A mismatch reads as not found so contractors cannot probe each other's work.
func (s *AssignmentService) getOwnAssignment(contractorID, assignmentID uint) (assignment.Assignment, error) {
	a, err := s.Repos.Assignment.GetAssignmentByID(assignmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, ErrAssignmentNotFound
	}
	if err != nil {
		return a, err
	}
	if a.ContractorID != contractorID {
		return a, ErrAssignmentNotFound
	}
	return a, nil
}

func (s *AssignmentService) ListContractorAssignments(contractorID uint) ([]assignment.Assignment, error) {
	return s.Repos.Assignment.ListAssignmentsByContractor(contractorID)
}

func (s *AssignmentService) GetAssignment(contractorID, assignmentID uint) (*assignment.Assignment, error) {
	a, err := s.getOwnAssignment(contractorID, assignmentID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAssignmentStatus moves the contractor's work forward and writes the
// mapped status through to the issue, notifying the tenant in the same
// transaction.
func (s *AssignmentService) UpdateAssignmentStatus(contractorID, assignmentID uint, input assignment.UpdateStatusDTO) (*assignment.Assignment, error) {
	_, actor, err := resolveActor(s.Repos, contractorID)
	if err != nil {
		return nil, err
	}

	a, err := s.getOwnAssignment(contractorID, assignmentID)
	if err != nil {
		return nil, err
	}

	newStatus := assignment.Status(input.Status)
	if !assignment.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}
	if !a.Status.CanTransition(newStatus) {
		return nil, ErrInvalidState
	}

	oldIssueStatus := a.Issue.Status
	newIssueStatus := assignment.IssueStatusFor(newStatus)

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		a.Status = newStatus
		if input.Notes != nil {
			a.Notes = input.Notes
		}
		if err := tx.Assignment.UpdateAssignment(&a); err != nil {
			return err
		}
		if err := tx.Issue.UpdateIssueStatus(a.IssueID, newIssueStatus); err != nil {
			return err
		}
		issueID := a.IssueID
		return s.Notifications.DispatchStatusChange(tx, a.Issue.TenantID, &issueID,
			string(oldIssueStatus), string(newIssueStatus), actor)
	})
	if err != nil {
		return nil, err
	}
	a.Issue.Status = newIssueStatus
	return &a, nil
}

// RejectAssignment declines the work and cancels the issue, so the manager
// can reassign from a clean slate.
func (s *AssignmentService) RejectAssignment(contractorID, assignmentID uint, input assignment.RejectDTO) error {
	_, actor, err := resolveActor(s.Repos, contractorID)
	if err != nil {
		return err
	}

	a, err := s.getOwnAssignment(contractorID, assignmentID)
	if err != nil {
		return err
	}
	if !a.Status.CanTransition(assignment.StatusRejected) {
		return ErrInvalidState
	}

	oldIssueStatus := a.Issue.Status
	return s.Repos.ExecTx(func(tx *repository.Repos) error {
		a.Status = assignment.StatusRejected
		a.RejectionReason = &input.Reason
		if err := tx.Assignment.UpdateAssignment(&a); err != nil {
			return err
		}
		if err := tx.Issue.UpdateIssueStatus(a.IssueID, issue.StatusCancelled); err != nil {
			return err
		}
		issueID := a.IssueID
		return s.Notifications.DispatchStatusChange(tx, a.Issue.TenantID, &issueID,
			string(oldIssueStatus), string(issue.StatusCancelled), actor)
	})
}

func (s *AssignmentService) UpdateAssignmentCost(contractorID, assignmentID uint, input assignment.UpdateCostDTO) (*assignment.Assignment, error) {
	a, err := s.getOwnAssignment(contractorID, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, ErrInvalidState
	}

	a.ActualCost = &input.ActualCost
	if err := s.Repos.Assignment.UpdateAssignment(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AssignmentService) saveAssignmentFile(ctx context.Context, assignmentID uint, kind string, upload Upload) (string, error) {
	objectName := fmt.Sprintf("assignments/%d/%s/%s%s", assignmentID, kind, uuid.NewString(), filepath.Ext(upload.Filename))
	return s.Store.Save(ctx, upload.Reader, upload.Size, objectName, upload.ContentType)
}

func (s *AssignmentService) UploadImage(ctx context.Context, contractorID, assignmentID uint, upload Upload) (*assignment.Image, error) {
	a, err := s.getOwnAssignment(contractorID, assignmentID)
	if err != nil {
		return nil, err
	}

	url, err := s.saveAssignmentFile(ctx, a.ID, "images", upload)
	if err != nil {
		return nil, fmt.Errorf("failed to store assignment image: %w", err)
	}
	img := &assignment.Image{AssignmentID: a.ID, ImageURL: url}
	if err := s.Repos.Assignment.AddImage(img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *AssignmentService) UploadDocument(ctx context.Context, contractorID, assignmentID uint, upload Upload, docType *string) (*assignment.Document, error) {
	a, err := s.getOwnAssignment(contractorID, assignmentID)
	if err != nil {
		return nil, err
	}

	url, err := s.saveAssignmentFile(ctx, a.ID, "documents", upload)
	if err != nil {
		return nil, fmt.Errorf("failed to store assignment document: %w", err)
	}
	doc := &assignment.Document{AssignmentID: a.ID, DocumentURL: url, Type: docType}
	if err := s.Repos.Assignment.AddDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// UploadCompletionData records the completion report: notes, work photos and
// an optional warranty document. It deliberately does not touch the status;
// marking the work Završeno is a separate, explicit transition.
func (s *AssignmentService) UploadCompletionData(ctx context.Context, contractorID, assignmentID uint, input assignment.CompletionDTO, images []Upload, warranty *Upload) (*assignment.Assignment, error) {
	a, err := s.getOwnAssignment(contractorID, assignmentID)
	if err != nil {
		return nil, err
	}

	a.Notes = &input.Notes
	if err := s.Repos.Assignment.UpdateAssignment(&a); err != nil {
		return nil, err
	}

	for _, img := range images {
		url, err := s.saveAssignmentFile(ctx, a.ID, "images", img)
		if err != nil {
			return nil, fmt.Errorf("failed to store completion image: %w", err)
		}
		row := &assignment.Image{AssignmentID: a.ID, ImageURL: url}
		if err := s.Repos.Assignment.AddImage(row); err != nil {
			return nil, err
		}
		a.Images = append(a.Images, *row)
	}

	if warranty != nil {
		url, err := s.saveAssignmentFile(ctx, a.ID, "documents", *warranty)
		if err != nil {
			return nil, fmt.Errorf("failed to store warranty document: %w", err)
		}
		docType := docTypeWarranty
		doc := &assignment.Document{AssignmentID: a.ID, DocumentURL: url, Type: &docType}
		if err := s.Repos.Assignment.AddDocument(doc); err != nil {
			return nil, err
		}
		a.Documents = append(a.Documents, *doc)
	}

	return &a, nil
}
