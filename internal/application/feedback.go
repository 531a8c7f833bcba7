package application

import (
	"errors"

	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/internal/repository"
	"gorm.io/gorm"
)

// FeedbackService covers issue comments, completion ratings and the general
// satisfaction survey.
type FeedbackService struct {
	Repos *repository.Repos
}

func NewFeedbackService(repos *repository.Repos) *FeedbackService {
	return &FeedbackService{Repos: repos}
}

// canAccessIssue mirrors the read rules: owners always, managers and admins
// always, contractors only when assigned to the issue.
func canAccessIssue(repos *repository.Repos, callerID uint, i *issue.Issue) (bool, error) {
	if i.TenantID == callerID {
		return true, nil
	}

	_, actor, err := resolveActor(repos, callerID)
	if err != nil {
		return false, err
	}
	switch actor.Role {
	case user.RoleManager, user.RoleAdmin:
		return true, nil
	case user.RoleContractor:
		a, err := repos.Assignment.GetActiveAssignmentByIssue(i.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return a.ContractorID == callerID, nil
	}
	return false, nil
}

func (s *FeedbackService) AddComment(callerID, issueID uint, input feedback.CreateCommentDTO) (*feedback.Comment, error) {
	i, err := s.Repos.Issue.GetIssueByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}

	ok, err := canAccessIssue(s.Repos, callerID, &i)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	c := &feedback.Comment{IssueID: issueID, UserID: callerID, Content: input.Content}
	if err := s.Repos.Feedback.CreateComment(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *FeedbackService) ListComments(callerID, issueID uint) ([]feedback.CommentRead, error) {
	i, err := s.Repos.Issue.GetIssueByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}

	ok, err := canAccessIssue(s.Repos, callerID, &i)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	comments, err := s.Repos.Feedback.ListCommentsForIssue(issueID)
	if err != nil {
		return nil, err
	}
	result := make([]feedback.CommentRead, 0, len(comments))
	for _, c := range comments {
		result = append(result, feedback.CommentRead{
			ID:        c.ID,
			IssueID:   c.IssueID,
			UserID:    c.UserID,
			UserName:  c.User.FullName,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return result, nil
}

// RateIssue records the tenant's score for their completed issue. Repeat
// submissions overwrite the previous score.
func (s *FeedbackService) RateIssue(tenantID, issueID uint, input feedback.CreateRatingDTO) (*feedback.Rating, error) {
	i, err := s.Repos.Issue.GetIssueByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	if i.TenantID != tenantID {
		return nil, ErrForbidden
	}
	if i.Status != issue.StatusDone {
		return nil, ErrInvalidState
	}

	r, err := s.Repos.Feedback.UpsertRating(issueID, tenantID, input.Score, input.Comment)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *FeedbackService) GetRating(tenantID, issueID uint) (*feedback.Rating, error) {
	r, err := s.Repos.Feedback.GetRating(issueID, tenantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *FeedbackService) SubmitSurvey(tenantID uint, input feedback.CreateSurveyDTO) (*feedback.Survey, error) {
	if input.IssueID != nil {
		i, err := s.Repos.Issue.GetIssueByID(*input.IssueID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		if err != nil {
			return nil, err
		}
		if i.TenantID != tenantID {
			return nil, ErrForbidden
		}
	}

	contact := input.ContactPreference
	if contact == "" {
		contact = "no"
	}
	sv := &feedback.Survey{
		TenantID:          tenantID,
		IssueID:           input.IssueID,
		SatisfactionLevel: input.SatisfactionLevel,
		IssueCategory:     input.IssueCategory,
		Description:       input.Description,
		Suggestions:       input.Suggestions,
		ContactPreference: contact,
	}
	if err := s.Repos.Feedback.CreateSurvey(sv); err != nil {
		return nil, err
	}
	return sv, nil
}

func (s *FeedbackService) ListOwnSurveys(tenantID uint) ([]feedback.Survey, error) {
	return s.Repos.Feedback.ListSurveysByTenant(tenantID)
}

func (s *FeedbackService) ListSurveys() ([]feedback.Survey, error) {
	return s.Repos.Feedback.ListSurveys()
}

func (s *FeedbackService) GetSurveyStats() (*feedback.SurveyStats, error) {
	stats, err := s.Repos.Feedback.SurveyStats()
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
